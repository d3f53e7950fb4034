package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// File keeps the snapshot in a single JSON document, the data.json layout
// used since the first release.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Load returns an empty snapshot when the file does not exist yet.
func (f *File) Load(_ context.Context) (*ledger.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		snap := &ledger.Snapshot{}
		snap.Normalize()

		return snap, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}

	snap.Normalize()

	return &snap, nil
}

// Save writes snap to a temporary file next to the target and renames it
// into place.
func (f *File) Save(ctx context.Context, snap *ledger.Snapshot) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "    ")

	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}

	return nil
}
