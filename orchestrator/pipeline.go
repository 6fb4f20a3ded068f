package orchestrator

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/labelgen/annotation"
	cfg "github.com/maastricht-university/labelgen/config"
)

type Options struct {
	Workers int
	Metrics *Metrics
	Log     logrus.FieldLogger
}

// Pipeline runs a Job over every utterance of a corpus on a fixed pool of
// workers. A failing utterance never affects the others.
type Pipeline struct {
	cfg     *cfg.Root
	corpus  annotation.Corpus
	workers int
	metrics *Metrics
	log     logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, corpus annotation.Corpus, opts Options) *Pipeline {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{cfg: c, corpus: corpus, workers: opts.Workers, metrics: opts.Metrics, log: log}
}

// Run processes every non-ignored utterance and blocks until all of them are
// done or failed. The returned error only covers failures before any task
// was queued; per-utterance failures are in the summary.
func (p *Pipeline) Run(ctx context.Context, job Job, outDir string) (*Summary, error) {
	start := time.Now()
	ids, err := p.corpus.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list utterances: %w", err)
	}
	if err := mkOutDir(outDir); err != nil {
		return nil, err
	}

	tasks, skipped := plan(ids, p.cfg.Ignored, outDir)
	workers := poolSize(p.workers, len(tasks))
	log := p.log.WithField("job", job.Name())
	log.WithFields(logrus.Fields{
		"utterances": len(tasks),
		"ignored":    len(skipped),
		"workers":    workers,
	}).Info("run started")

	queue := make(chan Task, len(tasks))
	for _, t := range tasks {
		queue <- t
	}
	// closing the drained queue is the pool-wide stop signal
	close(queue)

	results := make(chan Outcome, len(tasks))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			wlog := log.WithField("worker", w)
			for t := range queue {
				results <- p.process(ctx, job, t, wlog)
			}
		}(w)
	}
	wg.Wait()
	close(results)

	sum := &Summary{Job: job.Name(), Skipped: skipped}
	for o := range results {
		sum.add(o)
	}
	sum.sort()
	sum.Elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"done":    sum.Count(Done),
		"failed":  sum.Count(Failed),
		"elapsed": sum.Elapsed.Round(time.Millisecond),
	}).Info("run finished")
	return sum, nil
}

// process runs one task to a terminal state.
func (p *Pipeline) process(ctx context.Context, job Job, t Task, log logrus.FieldLogger) (o Outcome) {
	start := time.Now()
	log = log.WithField("utt", t.ID)
	log.WithField("state", Running).Debug("utterance started")

	defer func() {
		if r := recover(); r != nil {
			o.State = Failed
			o.Err = fmt.Errorf("panic: %v", r)
			// the job may have left a partial file behind
			if path := outputPath(t.OutDir, t.ID, job.Ext()); exists(path) {
				o.Path = path
			}
			log.WithField("stack", string(debug.Stack())).Debug("recovered panic")
		}
		o.ID = t.ID
		o.Elapsed = time.Since(start)
		p.metrics.observe(job.Name(), o)
		p.report(log, o)
	}()

	utt, err := p.corpus.Utterance(ctx, t.ID)
	if err != nil {
		return Outcome{State: Failed, Err: err}
	}
	o, err = job.Run(ctx, utt, t)
	if err != nil {
		o.State, o.Err = Failed, err
		return o
	}
	o.State = Done
	return o
}

func (p *Pipeline) report(log logrus.FieldLogger, o Outcome) {
	log = log.WithFields(logrus.Fields{"state": o.State, "elapsed": o.Elapsed.Round(time.Microsecond)})
	if o.Path != "" {
		log = log.WithField("path", o.Path)
	}
	if o.State == Failed {
		log.WithError(o.Err).Errorf("%d failed", o.ID)
		return
	}
	log.WithField("lines", o.Lines).Infof("%d is done", o.ID)
}
