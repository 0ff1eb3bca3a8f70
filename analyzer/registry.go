// Package analyzer implements a process-wide-in-name-only analyzer registry:
// a mapping from analyzer name to a pure tokenizer function. Unlike a true
// process singleton, callers construct their own *Registry, which makes unit
// tests hermetic.
package analyzer

import (
	"github.com/neganovalexey/ftindex/codeerrors"
)

// Token is one (term, position) pair a tokenizer emits for a document. Positions
// are per-document, start at 0, and increase by 1 per emitted token.
type Token struct {
	Term     string
	Position uint32
}

// TokenizeFunc turns document text into an ordered term stream. Implementations
// must be pure: no I/O, no shared mutable state.
type TokenizeFunc func(text string) []Token

// Registry maps analyzer names to tokenizer functions.
type Registry struct {
	byName map[string]TokenizeFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]TokenizeFunc)}
}

// Register binds name to fn, overwriting any previous binding. Used both to add
// the built-in analyzers and to let a host register custom ones (stemmers,
// language-specific tokenizers) without this package knowing about them.
func (r *Registry) Register(name string, fn TokenizeFunc) {
	r.byName[name] = fn
}

// Get looks up an analyzer by name. An unknown name is a ConfigError.
func (r *Registry) Get(name string) (TokenizeFunc, error) {
	fn, ok := r.byName[name]
	if !ok {
		return nil, codeerrors.ErrConfig.WithMessage("unknown analyzer: %q", name)
	}
	return fn, nil
}

// Names returns the currently registered analyzer names, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

// NewDefaultRegistry returns a Registry with the built-in "standard" and
// "keyword" analyzers already bound.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("standard", Standard)
	r.Register("keyword", Keyword)
	return r
}
