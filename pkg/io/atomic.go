package io

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/starfield/pkg/errors"
)

// WriteFileAtomic creates or replaces path with the bytes write produces.
//
// The content goes to a hidden temporary file next to path, which is synced
// and renamed into place only after write returns nil. Any failure removes
// the temporary file and leaves path as it was.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(f); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "sync %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename into %s", path)
	}
	return nil
}
