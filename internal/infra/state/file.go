package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"verse_channel_bot/internal/domain/cursor"
)

// FileRepository keeps the state document in a local JSON file.
type FileRepository struct {
	path string
}

var _ cursor.Repository = (*FileRepository)(nil)

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the file the repository writes to.
func (r *FileRepository) Path() string { return r.path }

func (r *FileRepository) Fetch(ctx context.Context) (cursor.State, error) {
	if err := ctx.Err(); err != nil {
		return cursor.State{}, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cursor.State{}, cursor.ErrNotFound
		}
		return cursor.State{}, fmt.Errorf("read state file: %w", err)
	}
	return decodeDocument(data)
}

// Persist overwrites the file. The document is written to a sibling temp
// file first and renamed into place so readers never see a partial write.
func (r *FileRepository) Persist(ctx context.Context, st cursor.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(st)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod state file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
