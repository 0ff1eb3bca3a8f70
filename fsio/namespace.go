// Package fsio implements a byte-oriented persistent file namespace: a place
// to put and get whole chunk files by path, modeled on a generic interface
// split from its filesystem-backed implementation.
package fsio

import "io"

// Namespace is the minimal file store the chunk and spill writers need: create,
// read-back, remove, and list. It is intentionally narrower than a full
// filesystem API — the engine never seeks or appends into an existing chunk file,
// it only ever writes one whole file and later reads it whole or removes it.
type Namespace interface {
	// Create opens path for writing, truncating any existing content. The
	// caller must Close the returned writer to make the write durable.
	Create(path string) (io.WriteCloser, error)
	// Open opens path for reading the whole file.
	Open(path string) (io.ReadCloser, error)
	// Remove deletes path. Removing a path that does not exist is not an error.
	Remove(path string) error
	// List returns the names of files directly under dir (not recursive).
	List(dir string) ([]string, error)
}

// ReadAll opens path and reads its entire contents, a convenience most chunk and
// spill readers need since these files are read whole, never streamed.
func ReadAll(ns Namespace, path string) ([]byte, error) {
	r, err := ns.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// WriteAll creates path and writes data to it in one call.
func WriteAll(ns Namespace, path string, data []byte) error {
	w, err := ns.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
