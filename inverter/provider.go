package inverter

import "github.com/neganovalexey/ftindex/posting"

// PostingWriterProvider breaks the cyclic borrow between a ColumnInverter and
// its owning indexer: rather than an inverter holding a pointer back to the
// indexer type, the indexer hands the inverter a small by-value capability
// that looks up (or lazily creates) a term's writer. GeneratePosting calls it
// once per distinct term in sorted order, so an implementation that
// constructs writers on first use sees each term exactly once per generation
// pass.
type PostingWriterProvider interface {
	// WriterFor returns the posting.Writer term should accumulate into. Called
	// at most once per term per GeneratePosting call; repeated calls for the
	// same term within one pass must return the same writer.
	WriterFor(term string) *posting.Writer
}

// ProviderFunc adapts a plain function to a PostingWriterProvider, the shape a
// MemoryIndexer's term map lookup naturally takes.
type ProviderFunc func(term string) *posting.Writer

// WriterFor implements PostingWriterProvider.
func (f ProviderFunc) WriterFor(term string) *posting.Writer {
	return f(term)
}
