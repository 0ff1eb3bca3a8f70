package query_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/iterator"
	"github.com/neganovalexey/ftindex/query"
	"github.com/neganovalexey/ftindex/rowid"
)

// fakeTermIterator walks a fixed, sorted docid list, enough surface for
// Node.Build's tests without pulling in the posting codec. Seek is stateless
// (a fresh binary search per call), so repeated or non-increasing Seek calls
// on the fake are well-defined even though the iterator package leaves them
// undefined.
type fakeTermIterator struct {
	docs      []rowid.RowID
	positions map[rowid.RowID][]rowid.Position
	doc       rowid.RowID
}

func newFakeTermIterator(docs ...rowid.RowID) *fakeTermIterator {
	return &fakeTermIterator{docs: docs, doc: rowid.Invalid}
}

func newFakeTermIteratorWithPositions(positions map[rowid.RowID][]rowid.Position) *fakeTermIterator {
	docs := make([]rowid.RowID, 0, len(positions))
	for d := range positions {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
	return &fakeTermIterator{docs: docs, positions: positions, doc: rowid.Invalid}
}

func (f *fakeTermIterator) Seek(target rowid.RowID) rowid.RowID {
	i := sort.Search(len(f.docs), func(i int) bool { return f.docs[i] >= target })
	if i >= len(f.docs) {
		f.doc = rowid.Invalid
		return rowid.Invalid
	}
	f.doc = f.docs[i]
	return f.doc
}
func (f *fakeTermIterator) Doc() rowid.RowID { return f.doc }
func (f *fakeTermIterator) GetDF() uint32    { return uint32(len(f.docs)) }
func (f *fakeTermIterator) GetCurrentTF() uint32 {
	return uint32(len(f.positions[f.doc]))
}
func (f *fakeTermIterator) SeekPosition(from rowid.Position) rowid.Position {
	positions := f.positions[f.doc]
	i := sort.Search(len(positions), func(i int) bool { return positions[i] >= from })
	if i >= len(positions) {
		return rowid.InvalidPosition
	}
	return positions[i]
}

// fakeFieldReader binds term -> docid list for one field, the seam
// query.Readers needs without a real ColumnIndexReader.
type fakeFieldReader struct {
	postings  map[string][]rowid.RowID
	positions map[string]map[rowid.RowID][]rowid.Position
	rowCount  uint32
}

func (f *fakeFieldReader) Lookup(term string) (iterator.TermIterator, bool, error) {
	if byDoc, ok := f.positions[term]; ok {
		return newFakeTermIteratorWithPositions(byDoc), true, nil
	}
	docs, ok := f.postings[term]
	if !ok {
		return nil, false, nil
	}
	return newFakeTermIterator(docs...), true, nil
}
func (f *fakeFieldReader) RowCount() uint32 { return f.rowCount }

func collect(it iterator.DocIterator) []rowid.RowID {
	var out []rowid.RowID
	for d := it.Seek(0); d != rowid.Invalid; d = it.Seek(d + 1) {
		out = append(out, d)
	}
	return out
}

func TestNodeBuildTermLookupHit(t *testing.T) {
	readers := query.Readers{
		"body": &fakeFieldReader{postings: map[string][]rowid.RowID{"fst": {1, 3, 5}}, rowCount: 10},
	}
	n := &query.Node{Kind: query.KindTerm, Field: "body", Term: "fst"}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, []rowid.RowID{1, 3, 5}, collect(it))
}

func TestNodeBuildTermLookupMissReturnsEmpty(t *testing.T) {
	readers := query.Readers{"body": &fakeFieldReader{postings: map[string][]rowid.RowID{}}}
	n := &query.Node{Kind: query.KindTerm, Field: "body", Term: "nope"}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, rowid.Invalid, it.Seek(0))
}

func TestNodeBuildUnboundFieldErrors(t *testing.T) {
	n := &query.Node{Kind: query.KindTerm, Field: "missing", Term: "fst"}
	_, err := n.Build(query.Readers{})
	require.ErrorIs(t, err, codeerrors.ErrConfig)
}

func TestNodeBuildPhraseMatchesAlignedPositionsOnly(t *testing.T) {
	readers := query.Readers{
		"body": &fakeFieldReader{positions: map[string]map[rowid.RowID][]rowid.Position{
			// doc 1: "finite state" (aligned, positions 0,1)
			// doc 2: "state finite" (present but not adjacent in order)
			"finite": {1: {0}, 2: {1}},
			"state":  {1: {1}, 2: {0}},
		}},
	}
	n := &query.Node{Kind: query.KindPhrase, Field: "body", Terms: []string{"finite", "state"}}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, []rowid.RowID{1}, collect(it))
}

func TestNodeBuildPhraseMissingTermReturnsEmpty(t *testing.T) {
	readers := query.Readers{
		"body": &fakeFieldReader{postings: map[string][]rowid.RowID{"finite": {1, 2}}},
	}
	n := &query.Node{Kind: query.KindPhrase, Field: "body", Terms: []string{"finite", "nowhere"}}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, rowid.Invalid, it.Seek(0))
}

func TestNodeBuildAndSplitsPositiveAndNegative(t *testing.T) {
	readers := query.Readers{
		"body": &fakeFieldReader{postings: map[string][]rowid.RowID{
			"fst":       {1, 2, 3, 4},
			"automaton": {2, 4},
		}},
	}
	positive := &query.Node{Kind: query.KindTerm, Field: "body", Term: "fst"}
	negative := &query.Node{Kind: query.KindTerm, Field: "body", Term: "automaton", Negative: true}
	n := &query.Node{Kind: query.KindAnd, Children: []*query.Node{positive, negative}}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, []rowid.RowID{1, 3}, collect(it))
}

func TestNodeBuildOrUnionsChildren(t *testing.T) {
	readers := query.Readers{
		"body": &fakeFieldReader{postings: map[string][]rowid.RowID{
			"fst":       {1, 3},
			"automaton": {2, 3},
		}, rowCount: 100},
	}
	a := &query.Node{Kind: query.KindTerm, Field: "body", Term: "fst"}
	b := &query.Node{Kind: query.KindTerm, Field: "body", Term: "automaton"}
	n := &query.Node{Kind: query.KindOr, Children: []*query.Node{a, b}}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, []rowid.RowID{1, 2, 3}, collect(it))
	require.LessOrEqual(t, it.GetDF(), uint32(100))
}

func TestNodeBuildOrDifferentFieldsUncapped(t *testing.T) {
	readers := query.Readers{
		"title": &fakeFieldReader{postings: map[string][]rowid.RowID{"fst": {1}}, rowCount: 5},
		"body":  &fakeFieldReader{postings: map[string][]rowid.RowID{"fst": {2}}, rowCount: 1000},
	}
	a := &query.Node{Kind: query.KindTerm, Field: "title", Term: "fst"}
	b := &query.Node{Kind: query.KindTerm, Field: "body", Term: "fst"}
	n := &query.Node{Kind: query.KindOr, Children: []*query.Node{a, b}}
	it, err := n.Build(readers)
	require.NoError(t, err)
	require.Equal(t, []rowid.RowID{1, 2}, collect(it))
}

func TestNodeBuildUnknownKindErrors(t *testing.T) {
	n := &query.Node{Kind: query.Kind(99)}
	_, err := n.Build(query.Readers{})
	require.ErrorIs(t, err, codeerrors.ErrConfig)
}
