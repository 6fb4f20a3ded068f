package annotation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `id: 4
tiers:
  seg:
    - {label: a, start: 0.0, end: 0.1}
    - {label: b, start: 0.1, end: 0.25}
  ph:
    - {label: a}
    - {label: b}
  syl:
    - {label: ab, stressed: true, nucleus: a}
relations:
  - from: seg
    to: ph
    links: [[0, 0], [1, 1]]
  - from: syl
    to: ph
    links: [[0, 0], [0, 1]]
`

func decodeSample(t *testing.T) *Document {
	t.Helper()
	d, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)
	return d
}

func TestDocumentLookups(t *testing.T) {
	d := decodeSample(t)

	n, err := d.Count("seg")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	it, err := d.Item("seg", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, it.End)

	_, err = d.Item("seg", 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = d.Count("word")
	assert.ErrorIs(t, err, ErrTierNotFound)
}

func TestDocumentRelatedBothDirections(t *testing.T) {
	d := decodeSample(t)

	fw, err := d.Related("syl", "ph", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, fw)

	bw, err := d.Related("ph", "syl", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, bw)

	_, err = d.Related("seg", "syl", 0)
	assert.ErrorIs(t, err, ErrRelationNotFound)

	_, err = d.Related("ph", "syl", 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDocumentRelatedEmptyIsNotAnError(t *testing.T) {
	d := &Document{Tiers: map[string][]Item{"seg": {{}, {}}, "nss": {{Label: "#"}}}}
	d.Relate("seg", "nss", Link{1, 0})

	got, err := d.Related("seg", "nss", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidateRejectsDanglingLink(t *testing.T) {
	d := &Document{Tiers: map[string][]Item{"a": {{}}, "b": {{}}}}
	d.Relate("a", "b", Link{0, 3})
	assert.ErrorIs(t, d.Validate(), ErrIndexOutOfRange)
}

func TestRolesTier(t *testing.T) {
	r := Roles{RolePhone: "Allophone"}
	name, err := r.Tier(RolePhone)
	require.NoError(t, err)
	assert.Equal(t, "Allophone", name)

	_, err = r.Tier(RoleWord)
	assert.ErrorIs(t, err, ErrMissingRole)
}

func TestDirCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.yaml"), []byte(sampleYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "10.yml"), []byte(sampleYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	c, err := Open(context.Background(), dir)
	require.NoError(t, err)
	defer c.Close()

	ids, err := c.IDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10}, ids)

	u, err := c.Utterance(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, u.ID())

	_, err = c.Utterance(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUtteranceMissing)
}

func TestSQLiteCorpus(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	w, err := CreateSQLite(ctx, path)
	require.NoError(t, err)
	d := decodeSample(t)
	require.NoError(t, w.Put(ctx, d))
	d.UttID = 1
	require.NoError(t, w.Put(ctx, d))
	require.NoError(t, w.Close())

	c, err := Open(ctx, path)
	require.NoError(t, err)
	defer c.Close()

	db, ok := c.(*SQLiteCorpus)
	require.True(t, ok)

	ids, err := db.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, ids)

	u, err := db.Utterance(ctx, 4)
	require.NoError(t, err)
	rel, err := u.Related("ph", "seg", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rel)

	_, err = db.Utterance(ctx, 9)
	assert.ErrorIs(t, err, ErrUtteranceMissing)
}

func TestOpenMissingSQLiteFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")

	_, err := Open(context.Background(), path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, path)
}
