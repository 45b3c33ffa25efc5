package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"cricsaga/internal/ports"
)

// FileArchive stores finished matches in a single JSON file. It is the
// fallback when no database is configured.
type FileArchive struct {
	mu   sync.Mutex
	path string
}

func NewFileArchive(path string) *FileArchive {
	return &FileArchive{path: path}
}

func (a *FileArchive) load() ([]ports.MatchRecord, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to read archive file")
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []ports.MatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "failed to unmarshal archive file")
	}
	return records, nil
}

func (a *FileArchive) store(records []ports.MatchRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "failed to marshal archive")
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return eris.Wrap(err, "failed to create archive directory")
	}

	// Write-then-rename keeps the file readable if the process dies mid-write.
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "failed to write archive file")
	}
	if err := os.Rename(tmp, a.path); err != nil {
		return eris.Wrap(err, "failed to replace archive file")
	}
	return nil
}

func (a *FileArchive) Save(_ context.Context, rec ports.MatchRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	records, err := a.load()
	if err != nil {
		return err
	}
	return a.store(append(records, rec))
}

func (a *FileArchive) ListByUser(_ context.Context, userID string, limit int) ([]ports.MatchRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	records, err := a.load()
	if err != nil {
		return nil, err
	}

	// Records append in play order, so walk backwards for newest first.
	var out []ports.MatchRecord
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.CreatorID != userID && r.JoinerID != userID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (a *FileArchive) Get(_ context.Context, matchID string) (ports.MatchRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	records, err := a.load()
	if err != nil {
		return ports.MatchRecord{}, err
	}
	for _, r := range records {
		if r.MatchID == matchID {
			return r, nil
		}
	}
	return ports.MatchRecord{}, ErrNotFound
}

func (a *FileArchive) Delete(_ context.Context, matchID, userID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	records, err := a.load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.MatchID != matchID {
			continue
		}
		if r.CreatorID != userID && r.JoinerID != userID {
			return ErrNotFound
		}
		return a.store(append(records[:i], records[i+1:]...))
	}
	return ErrNotFound
}
