package fsio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/neganovalexey/ftindex/codeerrors"
)

// FSNamespace is a Namespace backed by a local filesystem directory; every
// path is resolved relative to that root. Rooted at <data_dir>/<segment_id>,
// it holds chunk files at ft/<chunk_name>.idx.
type FSNamespace struct {
	root string
	log  *logrus.Logger
}

// NewFSNamespace roots a namespace at dir, creating it if necessary.
func NewFSNamespace(dir string, log *logrus.Logger) (*FSNamespace, error) {
	if log == nil {
		log = logrus.New()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, codeerrors.ErrIO.WithReason(errors.Wrapf(err, "fsio: creating namespace root %q", dir))
	}
	return &FSNamespace{root: filepath.Clean(dir), log: log}, nil
}

func (ns *FSNamespace) abs(path string) string {
	return filepath.Join(ns.root, filepath.Clean(path))
}

// Create implements Namespace. It creates parent directories as needed, so
// writing "<segment_id>/ft/<chunk_name>.idx" for a not-yet-seen segment works
// without a separate mkdir step.
func (ns *FSNamespace) Create(path string) (io.WriteCloser, error) {
	full := ns.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, codeerrors.ErrIO.WithReason(errors.Wrapf(err, "fsio: Create(%s)", path))
	}
	f, err := os.Create(full)
	if err != nil {
		return nil, codeerrors.ErrIO.WithReason(errors.Wrapf(err, "fsio: Create(%s)", path))
	}
	return f, nil
}

// Open implements Namespace.
func (ns *FSNamespace) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(ns.abs(path))
	if os.IsNotExist(err) {
		return nil, ErrNotFound.WithReason(errors.Wrapf(err, "fsio: Open(%s)", path))
	}
	if err != nil {
		return nil, codeerrors.ErrIO.WithReason(errors.Wrapf(err, "fsio: Open(%s)", path))
	}
	return f, nil
}

// Remove implements Namespace.
func (ns *FSNamespace) Remove(path string) error {
	err := os.Remove(ns.abs(path))
	if err != nil && !os.IsNotExist(err) {
		return codeerrors.ErrIO.WithReason(errors.Wrapf(err, "fsio: Remove(%s)", path))
	}
	return nil
}

// List implements Namespace.
func (ns *FSNamespace) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(ns.abs(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, codeerrors.ErrIO.WithReason(errors.Wrapf(err, "fsio: List(%s)", dir))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
