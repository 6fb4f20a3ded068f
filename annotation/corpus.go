package annotation

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
)

// Opener opens a corpus at a location understood by a remote backend.
type Opener func(ctx context.Context, location string) (Corpus, error)

var (
	openersMu sync.RWMutex
	openers   = map[string]Opener{}
)

// RegisterOpener binds a URL scheme (e.g. "http") to an Opener.
func RegisterOpener(scheme string, o Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	openers[scheme] = o
}

// Open picks a backend from the location: a registered URL scheme, an SQLite
// database file (.db, .sqlite, .sqlite3) or a directory of documents.
func Open(ctx context.Context, location string) (Corpus, error) {
	if i := strings.Index(location, "://"); i > 0 {
		openersMu.RLock()
		o, ok := openers[location[:i]]
		openersMu.RUnlock()
		if ok {
			return o(ctx, location)
		}
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(ctx, location)
	}
	return OpenDir(location)
}
