package annotation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var extFormats = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
}

// DirCorpus reads one document per utterance from a flat directory,
// named <id>.yaml, <id>.yml or <id>.json.
type DirCorpus struct {
	root  string
	files map[int]string
}

func OpenDir(root string) (*DirCorpus, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", root, err)
	}
	c := &DirCorpus{root: root, files: map[int]string{}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if _, ok := extFormats[ext]; !ok {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ext))
		if err != nil {
			continue
		}
		if prev, dup := c.files[id]; dup {
			return nil, fmt.Errorf("open corpus %s: utterance %d stored twice (%s, %s)", root, id, prev, e.Name())
		}
		c.files[id] = e.Name()
	}
	return c, nil
}

func (c *DirCorpus) IDs(context.Context) ([]int, error) {
	ids := make([]int, 0, len(c.files))
	for id := range c.files {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (c *DirCorpus) Utterance(_ context.Context, id int) (Utterance, error) {
	name, ok := c.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUtteranceMissing, id)
	}
	f, err := os.Open(filepath.Join(c.root, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Decode(f, extFormats[filepath.Ext(name)])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d.UttID = id
	return d, nil
}

func (c *DirCorpus) Close() error { return nil }
