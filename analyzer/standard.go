package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var foldCase = cases.Fold()

// Standard is the default analyzer: it folds fullwidth/halfwidth forms to
// their canonical width, NFKC-normalizes and lowercases the result, splits on
// runs of non-alphanumeric runes, and keeps tokens of length >= 1. It applies
// no stopword filtering; this analyzer's policy is "keep everything" so its
// output is exactly reproducible from the input text.
func Standard(text string) []Token {
	normalized := norm.NFKC.String(width.Fold.String(text))
	folded := foldCase.String(normalized)

	var tokens []Token
	var pos uint32
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tokens = append(tokens, Token{Term: b.String(), Position: pos})
		pos++
		b.Reset()
	}
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Keyword emits the entire input, normalized and lowercased, as a single token.
// It is meant for exact-match fields where tokenization would be lossy (ids,
// tags, enum-like values).
func Keyword(text string) []Token {
	normalized := norm.NFKC.String(width.Fold.String(text))
	folded := foldCase.String(normalized)
	if folded == "" {
		return nil
	}
	return []Token{{Term: folded, Position: 0}}
}
