package inverter

import (
	"sort"

	"github.com/neganovalexey/ftindex/analyzer"
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/column"
	"github.com/neganovalexey/ftindex/columnlen"
	"github.com/neganovalexey/ftindex/rowid"
)

// ColumnInverter turns a slice of a text column into sorted (term, docid,
// position) tuples and replays them into posting writers. One ColumnInverter is
// produced per Insert task; MemoryIndexer merges pairs of them down to one
// before generating postings.
type ColumnInverter struct {
	registry *analyzer.Registry
	tokenize analyzer.TokenizeFunc

	lengths *columnlen.Vector

	tuples  []tuple
	sorted  bool
	invalid bool
}

// New returns a ColumnInverter that shares lengths with every other inverter
// working the same segment, so column lengths accumulate correctly regardless
// of how rows were partitioned across Insert calls.
func New(registry *analyzer.Registry, lengths *columnlen.Vector) *ColumnInverter {
	return &ColumnInverter{registry: registry, lengths: lengths}
}

// InitAnalyzer binds the analyzer InvertColumn will tokenize with. Must be
// called before InvertColumn; an unknown name is a ConfigError.
func (ci *ColumnInverter) InitAnalyzer(name string) error {
	fn, err := ci.registry.Get(name)
	if err != nil {
		return err
	}
	ci.tokenize = fn
	return nil
}

// InvertColumn tokenizes column[rowOffset : rowOffset+rowCount] and records one
// tuple per (term, position) the analyzer emits for each row, tagging each row
// i with docid rowIDBase+i. It also adds each row's token count to the shared
// column-length vector, keyed by that row's docid.
func (ci *ColumnInverter) InvertColumn(col column.Batch, rowOffset, rowCount int, rowIDBase rowid.RowID) {
	if ci.tokenize == nil {
		codeerrors.Invariant("inverter.ColumnInverter: InvertColumn called before InitAnalyzer")
	}
	if ci.invalid {
		codeerrors.Invariant("inverter.ColumnInverter: use of inverter after Merge invalidated it")
	}

	slice := col.Slice(rowOffset, rowCount)
	for i, text := range slice.Values {
		docid := rowid.Base(rowIDBase, uint32(i))
		tokens := ci.tokenize(text)
		for _, tok := range tokens {
			ci.tuples = append(ci.tuples, tuple{Term: tok.Term, DocID: docid, Position: rowid.Position(tok.Position)})
		}
		ci.lengths.Add(docid, uint32(len(tokens)))
	}
}

// Merge moves all of other's tuples into ci and invalidates other: a later
// InvertColumn on other, or passing other to Merge again, panics. This models the ownership-transfer merge step the
// commit worker runs to fold ready inverters down to one.
func (ci *ColumnInverter) Merge(other *ColumnInverter) {
	if other.invalid {
		codeerrors.Invariant("inverter.ColumnInverter: Merge given an already-invalidated inverter")
	}
	ci.tuples = append(ci.tuples, other.tuples...)
	ci.sorted = false
	other.tuples = nil
	other.invalid = true
}

// Sort stable-sorts buffered tuples by (term, docid, position) ascending, the
// order GeneratePosting requires to group by term and feed AddPosition in
// docid order within each term.
func (ci *ColumnInverter) Sort() {
	sort.SliceStable(ci.tuples, func(i, j int) bool {
		a, b := ci.tuples[i], ci.tuples[j]
		if a.Term != b.Term {
			return a.Term < b.Term
		}
		if a.DocID != b.DocID {
			return a.DocID < b.DocID
		}
		return a.Position < b.Position
	})
	ci.sorted = true
}

// GeneratePosting walks the sorted tuples grouped by term, obtaining each
// term's writer from provider and calling AddPosition in (docid, position)
// order. Callers must call Sort first.
func (ci *ColumnInverter) GeneratePosting(provider PostingWriterProvider) {
	if !ci.sorted {
		codeerrors.Invariant("inverter.ColumnInverter: GeneratePosting called before Sort")
	}

	i := 0
	for i < len(ci.tuples) {
		term := ci.tuples[i].Term
		w := provider.WriterFor(term)
		for i < len(ci.tuples) && ci.tuples[i].Term == term {
			w.AddPosition(ci.tuples[i].DocID, ci.tuples[i].Position)
			i++
		}
	}
}

// Len returns the number of buffered tuples, for diagnostics and tests.
func (ci *ColumnInverter) Len() int {
	return len(ci.tuples)
}
