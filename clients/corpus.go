package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/maastricht-university/labelgen/annotation"
)

// --- Corpus (/utterances) ---
type IDsResp struct {
	IDs []int `json:"ids"`
}

// Corpus reads utterances from an annotation server.
type Corpus struct {
	h    *HTTP
	base string
}

func NewCorpus(h *HTTP, base string) *Corpus {
	return &Corpus{h: h, base: strings.TrimSuffix(base, "/")}
}

func (c *Corpus) IDs(ctx context.Context) ([]int, error) {
	var out IDsResp
	if err := c.get(ctx, "/utterances", &out); err != nil {
		return nil, fmt.Errorf("corpus ids: %w", err)
	}
	return out.IDs, nil
}

func (c *Corpus) Utterance(ctx context.Context, id int) (annotation.Utterance, error) {
	var d annotation.Document
	if err := c.get(ctx, fmt.Sprintf("/utterances/%d", id), &d); err != nil {
		return nil, fmt.Errorf("utterance %d: %w", id, err)
	}
	d.UttID = id
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Corpus) Close() error {
	c.h.c.CloseIdleConnections()
	return nil
}

func (c *Corpus) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return annotation.ErrUtteranceMissing
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
