package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/maastricht-university/labelgen/annotation"
)

type HTTP struct{ c *http.Client }

func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 60 * time.Second}} }

func init() {
	open := func(_ context.Context, location string) (annotation.Corpus, error) {
		return NewCorpus(NewHTTP(), location), nil
	}
	annotation.RegisterOpener("http", open)
	annotation.RegisterOpener("https", open)
}
