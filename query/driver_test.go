package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/analyzer"
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/query"
)

func newDriver() *query.Driver {
	return &query.Driver{
		Registry:      analyzer.NewDefaultRegistry(),
		DefaultField:  "body",
		FieldAnalyzer: map[string]string{"body": "standard", "title": "standard"},
	}
}

func TestDriverParseSingleWord(t *testing.T) {
	n, err := newDriver().Parse("fst", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, "body", n.Field)
	require.Equal(t, "fst", n.Term)
}

func TestDriverParsePhraseCollapsesMultipleTokens(t *testing.T) {
	n, err := newDriver().Parse(`"finite state"`, nil)
	require.NoError(t, err)
	require.Equal(t, query.KindPhrase, n.Kind)
	require.Equal(t, []string{"finite", "state"}, n.Terms)
}

func TestDriverParsePhraseSingleTokenCollapsesToTerm(t *testing.T) {
	n, err := newDriver().Parse(`"fst"`, nil)
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, "fst", n.Term)
}

func TestDriverParseFieldPrefix(t *testing.T) {
	n, err := newDriver().Parse("title:transducer", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, "title", n.Field)
	require.Equal(t, "transducer", n.Term)
}

func TestDriverParseAnd(t *testing.T) {
	n, err := newDriver().Parse("fst AND automaton", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindAnd, n.Kind)
	require.Len(t, n.Children, 2)
	require.False(t, n.Children[0].Negative)
	require.False(t, n.Children[1].Negative)
}

func TestDriverParseAndNot(t *testing.T) {
	n, err := newDriver().Parse("fst AND NOT automaton", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindAnd, n.Kind)
	require.Len(t, n.Children, 2)
	require.False(t, n.Children[0].Negative)
	require.True(t, n.Children[1].Negative)
	require.Equal(t, "automaton", n.Children[1].Term)
}

func TestDriverParseBareNotRejected(t *testing.T) {
	_, err := newDriver().Parse("NOT fst", nil)
	require.ErrorIs(t, err, codeerrors.ErrSyntax)
}

func TestDriverParseAllNegativeAndRejected(t *testing.T) {
	_, err := newDriver().Parse("NOT fst AND NOT automaton", nil)
	require.ErrorIs(t, err, codeerrors.ErrSyntax)
}

func TestDriverParseImplicitOr(t *testing.T) {
	n, err := newDriver().Parse("fst automaton", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindOr, n.Kind)
	require.Len(t, n.Children, 2)
}

func TestDriverParseExplicitOr(t *testing.T) {
	n, err := newDriver().Parse("fst OR automaton", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindOr, n.Kind)
	require.Len(t, n.Children, 2)
}

func TestDriverParseParens(t *testing.T) {
	n, err := newDriver().Parse("(fst OR automaton) AND transducer", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindAnd, n.Kind)
	require.Equal(t, query.KindOr, n.Children[0].Kind)
}

func TestDriverParseBoost(t *testing.T) {
	n, err := newDriver().Parse("fst^2.5", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, 2.5, n.Weight)
}

func TestDriverParseBoostMissingValue(t *testing.T) {
	_, err := newDriver().Parse("fst^", nil)
	require.ErrorIs(t, err, codeerrors.ErrSyntax)
}

func TestDriverParseEmptyTextRejected(t *testing.T) {
	_, err := newDriver().Parse("", nil)
	require.ErrorIs(t, err, codeerrors.ErrSyntax)
}

func TestDriverParseEmptyTermsAfterAnalyzingRejected(t *testing.T) {
	_, err := newDriver().Parse("---", nil)
	require.ErrorIs(t, err, codeerrors.ErrSyntax)
}

func TestDriverParseUnanalyzedFieldKeepsLiteralTerm(t *testing.T) {
	d := newDriver()
	n, err := d.Parse("id:Some-ID_007", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, "id", n.Field)
	require.Equal(t, "Some-ID_007", n.Term)
}

func TestDriverParseNoFieldsUsesDefaultField(t *testing.T) {
	n, err := newDriver().Parse("fst", nil)
	require.NoError(t, err)
	require.Equal(t, "body", n.Field)
}

func TestDriverParseSingleFieldAppliesBoost(t *testing.T) {
	n, err := newDriver().Parse("fst", []query.FieldBoost{{Field: "title", Boost: 3}})
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, "title", n.Field)
	require.Equal(t, 3.0, n.Weight)
}

func TestDriverParseMultipleFieldsFansOutIntoOr(t *testing.T) {
	n, err := newDriver().Parse("fst", []query.FieldBoost{
		{Field: "title", Boost: 2},
		{Field: "body", Boost: 1},
	})
	require.NoError(t, err)
	require.Equal(t, query.KindOr, n.Kind)
	require.Len(t, n.Children, 2)
	require.Equal(t, "title", n.Children[0].Field)
	require.Equal(t, 2.0, n.Children[0].Weight)
	require.Equal(t, "body", n.Children[1].Field)
	require.Equal(t, 1.0, n.Children[1].Weight)
}

func TestDriverParseMultipleFieldsSkipsFieldThatFailsToParse(t *testing.T) {
	// "body" is bound to the standard analyzer, so "---" analyzes to zero
	// terms and fails; "id" is unbound and keeps "---" as a literal term.
	// The failing field is dropped rather than aborting the whole parse.
	n, err := newDriver().Parse("---", []query.FieldBoost{
		{Field: "body", Boost: 1},
		{Field: "id", Boost: 1},
	})
	require.NoError(t, err)
	require.Equal(t, query.KindTerm, n.Kind)
	require.Equal(t, "id", n.Field)
	require.Equal(t, "---", n.Term)
}

func TestDriverParseMultipleFieldsAllFailingErrors(t *testing.T) {
	_, err := newDriver().Parse("---", []query.FieldBoost{
		{Field: "body", Boost: 1},
		{Field: "title", Boost: 1},
	})
	require.ErrorIs(t, err, codeerrors.ErrSyntax)
}

func TestDriverParseFieldPrefixAppliesInsideParens(t *testing.T) {
	n, err := newDriver().Parse("title:(fst OR automaton)", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindOr, n.Kind)
	require.Len(t, n.Children, 2)
	require.Equal(t, "title", n.Children[0].Field)
	require.Equal(t, "title", n.Children[1].Field)
}

func TestDriverParseFieldPrefixAppliesToAndInsideParens(t *testing.T) {
	n, err := newDriver().Parse("title:(fst AND automaton)", nil)
	require.NoError(t, err)
	require.Equal(t, query.KindAnd, n.Kind)
	require.Len(t, n.Children, 2)
	require.Equal(t, "title", n.Children[0].Field)
	require.Equal(t, "title", n.Children[1].Field)
}
