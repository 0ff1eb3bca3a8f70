package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/analyzer"
	"github.com/neganovalexey/ftindex/codeerrors"
)

func TestStandardAnalyzer(t *testing.T) {
	tokens := analyzer.Standard("Finite-State Transducers (FSTs) map input1 to OUTPUT!")
	var terms []string
	for _, tok := range tokens {
		terms = append(terms, tok.Term)
	}
	require.Equal(t, []string{"finite", "state", "transducers", "fsts", "map", "input1", "to", "output"}, terms)
	for i, tok := range tokens {
		require.Equal(t, uint32(i), tok.Position)
	}
}

func TestStandardAnalyzerEmpty(t *testing.T) {
	require.Empty(t, analyzer.Standard("   ---   "))
}

func TestKeywordAnalyzer(t *testing.T) {
	tokens := analyzer.Keyword("Some-ID_007")
	require.Equal(t, []analyzer.Token{{Term: "some-id_007", Position: 0}}, tokens)
	require.Nil(t, analyzer.Keyword(""))
}

func TestRegistryUnknownAnalyzer(t *testing.T) {
	r := analyzer.NewRegistry()
	_, err := r.Get("nope")
	require.ErrorIs(t, err, codeerrors.ErrConfig)
}

func TestDefaultRegistryHasStandardAndKeyword(t *testing.T) {
	r := analyzer.NewDefaultRegistry()
	fn, err := r.Get("standard")
	require.NoError(t, err)
	require.NotEmpty(t, fn("fst"))

	fn, err = r.Get("keyword")
	require.NoError(t, err)
	require.Len(t, fn("Exact Value"), 1)
}
