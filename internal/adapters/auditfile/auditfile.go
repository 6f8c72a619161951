// Package auditfile manages the append-only audit log file
package auditfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"
	"todoapi/internal/platform/seam"
)

// DefaultPath is used when no path is configured
const DefaultPath = "audit.log"

// File is the audit log sink
type File interface {
	Append(ctx context.Context, text string) error
	Read(ctx context.Context) (string, error)
}

// Disk appends to a file on the local filesystem
type Disk struct {
	Path string

	mu sync.Mutex
}

// NewDisk returns a Disk writing to path, or DefaultPath when empty
func NewDisk(path string) *Disk {
	if path == "" {
		path = DefaultPath
	}
	return &Disk{Path: path}
}

// Append writes text at the end of the file, creating it when missing
func (d *Disk) Append(_ context.Context, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.OpenFile(d.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "open audit log %s", d.Path)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "append audit log %s", d.Path)
	}
	return f.Close()
}

// Read returns the whole file
func (d *Disk) Read(_ context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, err := os.ReadFile(d.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", perr.Wrapf(err, perr.ErrorCodeNotFound, "The audit log file does not exist.")
	}
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "read audit log %s", d.Path)
	}
	return string(b), nil
}

// Remove deletes the file, a missing file is not an error
func (d *Disk) Remove(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := os.Remove(d.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "remove audit log %s", d.Path)
	}
	return nil
}

// NewDependency registers the "auditLogFile" seam on env. Tests that use the
// real file start from an empty log
func NewDependency(env *seam.Env, disk *Disk) *seam.Dependency[File] {
	d := seam.New[File](env, "auditLogFile", disk)
	d.BeforeUsedInTests(func(ctx context.Context) error {
		logger.Named("auditfile").Debug().Str("path", disk.Path).Msg("clearing audit log")
		return disk.Remove(ctx)
	})
	return d
}
