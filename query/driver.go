package query

import (
	"github.com/neganovalexey/ftindex/analyzer"
	"github.com/neganovalexey/ftindex/codeerrors"
)

// FieldBoost pairs a field name with the weight multiplier its matches
// contribute, one entry of a "f1^b1,f2^b2,..." fields list.
type FieldBoost struct {
	Field string
	Boost float64
}

// Driver turns query text into a Node tree, applying each field's bound
// analyzer to its leaf terms as they're parsed. Callers construct their own
// Driver rather than reaching for a singleton, so tests can bind whatever
// analyzers and fields they need.
type Driver struct {
	Registry     *analyzer.Registry
	DefaultField string
	// FieldAnalyzer binds a field name to the analyzer name its leaf terms
	// are re-analyzed with. A field absent from this map (or bound to "") is
	// left unanalyzed: its leaf text becomes a single literal term.
	FieldAnalyzer map[string]string
}

// Parse parses text once per requested field: no fields parses once against
// the driver's default field; one field parses once against that field and
// multiplies the root's weight by its boost; more than one field parses text
// against each field independently and OR-wraps the results, each
// multiplied by its own boost. A field whose parse fails is dropped rather
// than aborting the whole call; Parse only errors once every field has
// dropped out.
func (d *Driver) Parse(text string, fields []FieldBoost) (*Node, error) {
	switch len(fields) {
	case 0:
		return d.parseSingle(text, d.DefaultField)

	case 1:
		n, err := d.parseSingle(text, fields[0].Field)
		if err != nil {
			return nil, err
		}
		n.Weight *= fields[0].Boost
		return n, nil

	default:
		var children []*Node
		var lastErr error
		for _, f := range fields {
			n, err := d.parseSingle(text, f.Field)
			if err != nil {
				lastErr = err
				continue
			}
			n.Weight *= f.Boost
			children = append(children, n)
		}
		if len(children) == 0 {
			if lastErr == nil {
				lastErr = codeerrors.ErrSyntax.WithMessage("no field parsed the query text")
			}
			return nil, lastErr
		}
		if len(children) == 1 {
			return children[0], nil
		}
		return &Node{Kind: KindOr, Children: children, Weight: 1.0}, nil
	}
}

func (d *Driver) parseSingle(text, defaultField string) (*Node, error) {
	if text == "" {
		return nil, codeerrors.ErrSyntax.WithMessage("empty query text")
	}
	p := newParser(d, text, defaultField)
	if p.cur.kind == tokEOF {
		return nil, codeerrors.ErrSyntax.WithMessage("empty query text")
	}
	n, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, codeerrors.ErrSyntax.WithMessage("unexpected trailing input in query")
	}
	return n, nil
}

// analyzeLeaf resolves one leaf's text against field's bound analyzer, if
// any: analyzed text collapses to a single term node or, when it tokenizes
// into more than one term, a phrase node, erroring on zero terms. An unbound
// field keeps text as a single literal term.
func (d *Driver) analyzeLeaf(field, text string) (*Node, error) {
	analyzerName, bound := d.FieldAnalyzer[field]
	if !bound || analyzerName == "" {
		return &Node{Kind: KindTerm, Field: field, Term: text, Weight: 1.0}, nil
	}

	tokenize, err := d.Registry.Get(analyzerName)
	if err != nil {
		return nil, err
	}
	tokens := tokenize(text)
	switch len(tokens) {
	case 0:
		return nil, codeerrors.ErrSyntax.WithMessage("Empty terms after analyzing")
	case 1:
		return &Node{Kind: KindTerm, Field: field, Term: tokens[0].Term, Weight: 1.0}, nil
	default:
		terms := make([]string, len(tokens))
		for i, tok := range tokens {
			terms[i] = tok.Term
		}
		return &Node{Kind: KindPhrase, Field: field, Terms: terms, Weight: 1.0}, nil
	}
}
