// Package testutil holds fixtures and namespace-config helpers shared across
// this repo's test suites: a small, hand-rolled helper package rather than a
// generic test framework.
package testutil

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/fsio"
)

// Paragraphs is a small fixed corpus about finite-state automata and
// transducers, used as ingested rows by the indexer tests so a term like
// "transducer" or a phrase like "finite state" has a known, hand-checkable
// set of matching rows.
var Paragraphs = []string{
	"A finite-state automaton is an abstract machine that recognizes regular languages.",
	"A finite-state transducer extends an automaton with an output tape.",
	"Weighted finite-state transducers compose paths and accumulate path weights.",
	"The determinization of a transducer can blow up exponentially in the worst case.",
	"Minimization finds the smallest automaton equivalent to a given one.",
}

// NewNamespace returns a fsio.Namespace rooted at a fresh temp directory that
// t.Cleanup removes.
func NewNamespace(t *testing.T) fsio.Namespace {
	t.Helper()
	ns, err := fsio.NewFSNamespace(t.TempDir(), logrus.New())
	require.NoError(t, err)
	return ns
}
