package fsio

import "github.com/neganovalexey/ftindex/codeerrors"

// ErrNotFound reports a missing file, wrapped by implementations as
// codeerrors.ErrIO so callers can treat it uniformly with other I/O failures
// while still branching on the underlying os error when useful.
var ErrNotFound = codeerrors.ErrIO.WithMessage("file not found")
