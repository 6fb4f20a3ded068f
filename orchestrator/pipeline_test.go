package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/labelgen/annotation"
	"github.com/maastricht-university/labelgen/annotation/annotationtest"
	cfg "github.com/maastricht-university/labelgen/config"
	"github.com/maastricht-university/labelgen/features"
)

var errCorrupted = errors.New("corrupted entry")

// memCorpus serves in-memory utterances and fails the ids in broken.
type memCorpus struct {
	docs   map[int]*annotation.Document
	broken map[int]bool
	reads  atomic.Int32
}

func newMemCorpus(n int) *memCorpus {
	c := &memCorpus{docs: map[int]*annotation.Document{}, broken: map[int]bool{}}
	for id := 0; id < n; id++ {
		c.docs[id] = annotationtest.Sentence(id)
	}
	return c
}

func (c *memCorpus) IDs(context.Context) ([]int, error) {
	ids := make([]int, 0, len(c.docs))
	for id := 0; id < len(c.docs); id++ {
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *memCorpus) Utterance(_ context.Context, id int) (annotation.Utterance, error) {
	c.reads.Add(1)
	if c.broken[id] {
		return nil, errCorrupted
	}
	return c.docs[id], nil
}

func (c *memCorpus) Close() error { return nil }

func testConfig(ignore ...int) *cfg.Root {
	c := cfg.Default()
	c.Ignore = ignore
	return c
}

func labelJob() LabelJob {
	return LabelJob{Roles: annotationtest.Roles(), Params: features.DefaultParams()}
}

func quietLogger() (*logrus.Logger, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunSkipsIgnoredUtterances(t *testing.T) {
	out := t.TempDir()
	corpus := newMemCorpus(4)
	log, _ := quietLogger()

	p := NewPipeline(testConfig(1, 3), corpus, Options{Workers: 2, Log: log})
	sum, err := p.Run(context.Background(), labelJob(), out)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"0.lab", "2.lab"}, listDir(t, out))
	assert.Equal(t, []int{1, 3}, sum.Skipped)
	assert.Equal(t, 2, sum.Count(Done))
	assert.EqualValues(t, 2, corpus.reads.Load())
}

func TestRunIsolatesFailures(t *testing.T) {
	out := t.TempDir()
	corpus := newMemCorpus(5)
	corpus.broken[2] = true
	log, hook := quietLogger()

	p := NewPipeline(testConfig(), corpus, Options{Workers: 3, Log: log})
	sum, err := p.Run(context.Background(), labelJob(), out)
	require.NoError(t, err)

	require.Len(t, sum.Outcomes, 5)
	for _, o := range sum.Outcomes {
		assert.True(t, o.State.Terminal())
	}
	assert.Equal(t, []int{2}, sum.Failed())
	assert.ErrorIs(t, sum.Outcomes[2].Err, errCorrupted)
	assert.ElementsMatch(t, []string{"0.lab", "1.lab", "3.lab", "4.lab"}, listDir(t, out))

	for _, id := range []string{"0", "1", "3", "4"} {
		body, err := os.ReadFile(filepath.Join(out, id+LabelExt))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
		assert.Len(t, lines, 11)
		assert.True(t, strings.HasSuffix(lines[5], "/J:4+3-2/Z:x"))
	}

	var failures int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			failures++
			assert.Equal(t, 2, e.Data["utt"])
			assert.Equal(t, "2 failed", e.Message)
		}
	}
	assert.Equal(t, 1, failures)
}

func TestRunKeepsPartialOutput(t *testing.T) {
	out := t.TempDir()
	corpus := newMemCorpus(1)
	// an explicit, empty syllable→phone relation leaves every syllable without
	// phones: the leading silence is written, the first phone fails
	d := annotationtest.Sentence(0)
	d.Relations = append(d.Relations, annotation.RelationDoc{From: "syllable", To: "phone"})
	corpus.docs[0] = d
	log, _ := quietLogger()

	sum, err := NewPipeline(testConfig(), corpus, Options{Log: log}).Run(context.Background(), labelJob(), out)
	require.NoError(t, err)

	o := sum.Outcomes[0]
	assert.Equal(t, Failed, o.State)
	assert.ErrorIs(t, o.Err, features.ErrInconsistent)
	assert.Equal(t, 1, o.Lines)
	body, err := os.ReadFile(o.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(body), "\n"))
}

type panicJob struct{}

func (panicJob) Name() string { return "panic" }
func (panicJob) Ext() string { return LabelExt }

// Run leaves a half-written file for utterance 1 before panicking.
func (panicJob) Run(_ context.Context, utt annotation.Utterance, t Task) (Outcome, error) {
	if utt.ID() == 1 {
		f, _, err := createOutput(t.OutDir, t.ID, LabelExt)
		if err != nil {
			return Outcome{}, err
		}
		_, _ = f.WriteString("0 1250000 partial\n")
		f.Close()
		panic("boom")
	}
	return Outcome{Lines: 1}, nil
}

func TestRunRecoversPanics(t *testing.T) {
	out := t.TempDir()
	log, _ := quietLogger()
	sum, err := NewPipeline(testConfig(), newMemCorpus(3), Options{Workers: 8, Log: log}).
		Run(context.Background(), panicJob{}, out)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, sum.Failed())
	assert.EqualError(t, sum.Outcomes[1].Err, "panic: boom")
	assert.Equal(t, filepath.Join(out, "1.lab"), sum.Outcomes[1].Path)
	assert.Empty(t, sum.Outcomes[0].Path)
	assert.Equal(t, 2, sum.Count(Done))
}

func TestRunEmptyCorpus(t *testing.T) {
	log, _ := quietLogger()
	sum, err := NewPipeline(testConfig(), newMemCorpus(0), Options{Workers: 4, Log: log}).
		Run(context.Background(), labelJob(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, sum.Outcomes)
}

func TestSignalJob(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "utt.wav"), []byte("RIFF"), 0o644))

	corpus := newMemCorpus(2)
	b := annotationtest.New(0)
	b.Add(annotation.RoleSignal, annotation.Item{File: "utt.wav"})
	corpus.docs[0] = b.Doc()

	out := t.TempDir()
	log, _ := quietLogger()
	job := SignalJob{Roles: annotationtest.Roles(), BaseDir: src}
	sum, err := NewPipeline(testConfig(), corpus, Options{Log: log}).Run(context.Background(), job, out)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, sum.Failed())
	assert.ErrorIs(t, sum.Outcomes[1].Err, ErrNoSignal)
	body, err := os.ReadFile(filepath.Join(out, "0.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(body))
}

func TestMetricsTextfile(t *testing.T) {
	corpus := newMemCorpus(3)
	corpus.broken[0] = true
	m := NewMetrics()
	log, _ := quietLogger()

	_, err := NewPipeline(testConfig(), corpus, Options{Workers: 2, Metrics: m, Log: log}).
		Run(context.Background(), labelJob(), t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "labelgen.prom")
	require.NoError(t, m.WriteTextfile(path))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `labelgen_utterances_total{job="labels",state="done"} 2`)
	assert.Contains(t, string(body), `labelgen_utterances_total{job="labels",state="failed"} 1`)
	assert.Contains(t, string(body), "labelgen_label_lines_total 22")
}

func TestPoolSize(t *testing.T) {
	assert.Equal(t, 1, poolSize(0, 10))
	assert.Equal(t, 3, poolSize(8, 3))
	assert.Equal(t, 4, poolSize(4, 0))
	assert.Equal(t, 2, poolSize(2, 5))
}
