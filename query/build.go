package query

import (
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/iterator"
)

// FieldReader is what a Node needs from the host to resolve one field's
// terms into postings, generalized to a TermIterator so a phrase node can
// also read positions. RowCount, when known, bounds an OrIterator's df
// estimate; 0 means unknown/uncapped.
type FieldReader interface {
	Lookup(term string) (iterator.TermIterator, bool, error)
	RowCount() uint32
}

// Readers resolves a query's field names to the FieldReader that serves them,
// the seam between a parsed Node tree and whatever façade (indexer.Catalog's
// ColumnIndexReaders, in this repo) actually owns postings per column.
type Readers map[string]FieldReader

func (r Readers) field(name string) (FieldReader, error) {
	fr, ok := r[name]
	if !ok {
		return nil, codeerrors.ErrConfig.WithMessage("query: no reader bound for field %q", name)
	}
	return fr, nil
}

// Build compiles n into the iterator algebra, resolving each leaf's field
// against readers.
func (n *Node) Build(readers Readers) (iterator.DocIterator, error) {
	switch n.Kind {
	case KindTerm:
		fr, err := readers.field(n.Field)
		if err != nil {
			return nil, err
		}
		it, ok, err := fr.Lookup(n.Term)
		if err != nil {
			return nil, err
		}
		if !ok {
			return iterator.Empty(), nil
		}
		return it, nil

	case KindPhrase:
		fr, err := readers.field(n.Field)
		if err != nil {
			return nil, err
		}
		children := make([]iterator.TermIterator, 0, len(n.Terms))
		for _, term := range n.Terms {
			it, ok, err := fr.Lookup(term)
			if err != nil {
				return nil, err
			}
			if !ok {
				return iterator.Empty(), nil
			}
			children = append(children, it)
		}
		return iterator.NewPhraseIterator(children), nil

	case KindAnd:
		var positive, negative []iterator.DocIterator
		for _, child := range n.Children {
			it, err := child.Build(readers)
			if err != nil {
				return nil, err
			}
			if child.Negative {
				negative = append(negative, it)
			} else {
				positive = append(positive, it)
			}
		}
		return iterator.NewAndIterator(positive, negative), nil

	case KindOr:
		children := make([]iterator.DocIterator, 0, len(n.Children))
		for _, child := range n.Children {
			it, err := child.Build(readers)
			if err != nil {
				return nil, err
			}
			children = append(children, it)
		}
		return iterator.NewOrIterator(children, n.orDFCap(readers)), nil

	default:
		return nil, codeerrors.ErrConfig.WithMessage("query: unknown node kind %d", n.Kind)
	}
}

// orDFCap returns a df cap for an OR node built from same-field children
// (parser.go's implicit-OR and driver.go's fields-fanout OR are the two
// shapes this arises from): the field's live row count, when known, or 0
// (uncapped) when the children don't share one field.
func (n *Node) orDFCap(readers Readers) uint32 {
	field := ""
	for i, child := range n.Children {
		if i == 0 {
			field = child.Field
			continue
		}
		if child.Field != field {
			return 0
		}
	}
	if field == "" {
		return 0
	}
	fr, err := readers.field(field)
	if err != nil {
		return 0
	}
	return fr.RowCount()
}
