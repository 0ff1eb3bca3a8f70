package indexer

import (
	"sync"

	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/fsio"
	"github.com/neganovalexey/ftindex/metrics"
)

// Catalog owns the column_id -> ColumnIndexReader binding: the entry point
// queries use to reach a column's postings without knowing which segments
// back it.
type Catalog struct {
	positionsEnabled bool
	metrics          *metrics.Metrics

	mu      sync.Mutex
	readers map[uint64]*ColumnIndexReader
}

// NewCatalog returns an empty catalog. positionsEnabled must match how the
// bound segments' chunks and active indexers were configured; a catalog does
// not mix positions-enabled and positions-disabled segments for one column.
// m may be nil to disable instrumentation.
func NewCatalog(positionsEnabled bool, m *metrics.Metrics) *Catalog {
	return &Catalog{positionsEnabled: positionsEnabled, metrics: m, readers: make(map[uint64]*ColumnIndexReader)}
}

// BindSegment registers a segment's chunks and active indexer as a source
// for columnID, creating the column's reader on first use.
func (c *Catalog) BindSegment(columnID uint64, ns fsio.Namespace, entry *SegmentIndexEntry) {
	c.mu.Lock()
	r, ok := c.readers[columnID]
	if !ok {
		r = NewColumnIndexReader(c.positionsEnabled, c.metrics)
		c.readers[columnID] = r
	}
	c.mu.Unlock()
	r.AddSegment(ns, entry)
}

// OpenColumnIndexReader returns the reader bound for columnID.
func (c *Catalog) OpenColumnIndexReader(columnID uint64) (*ColumnIndexReader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.readers[columnID]
	if !ok {
		return nil, codeerrors.ErrNotFound.WithMessage("no index bound for column %d", columnID)
	}
	return r, nil
}
