package indexer

import (
	"context"
	"path"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/neganovalexey/ftindex/analyzer"
	"github.com/neganovalexey/ftindex/chunk"
	"github.com/neganovalexey/ftindex/codeerrors"
	"github.com/neganovalexey/ftindex/column"
	"github.com/neganovalexey/ftindex/columnlen"
	"github.com/neganovalexey/ftindex/fsio"
	"github.com/neganovalexey/ftindex/inverter"
	"github.com/neganovalexey/ftindex/metrics"
	"github.com/neganovalexey/ftindex/posting"
	"github.com/neganovalexey/ftindex/rowid"
)

// Config controls a MemoryIndexer's posting layout, analyzer binding, and
// persistence target.
type Config struct {
	ChunkName        string
	AnalyzerName     string
	BlockSize        int
	PositionsEnabled bool
	PoolWidth        int
	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.Metrics
}

// MemoryIndexer owns a term->PostingWriter map for one segment: it dispatches
// column-batch inversion to a bounded worker pool, merges the results down to
// one under a single mutex, and supports Dump/Load for handing finished
// postings off to disk.
type MemoryIndexer struct {
	cfg      Config
	registry *analyzer.Registry
	ns       fsio.Namespace
	lengths  *columnlen.Vector
	pool     *Pool

	inflight int64

	queueMu sync.Mutex
	ready   []*inverter.ColumnInverter

	mapMu   sync.Mutex
	writers map[string]*posting.Writer
}

// New returns an empty MemoryIndexer backed by ns for persistence.
func New(ctx context.Context, cfg Config, registry *analyzer.Registry, ns fsio.Namespace) *MemoryIndexer {
	return &MemoryIndexer{
		cfg:      cfg,
		registry: registry,
		ns:       ns,
		lengths:  columnlen.New(),
		pool:     NewPool(ctx, cfg.PoolWidth),
		writers:  make(map[string]*posting.Writer),
	}
}

// Insert tokenizes column[rowOffset:rowOffset+rowCount] and folds the results
// into the writer map. If async, the work is dispatched to the pool and Insert
// returns immediately; otherwise the calling goroutine performs the inversion
// itself before returning, matching async=false's default synchronous
// behavior.
func (idx *MemoryIndexer) Insert(col column.Batch, rowOffset, rowCount int, rowIDBase rowid.RowID, async bool) error {
	atomic.AddInt64(&idx.inflight, 1)
	idx.cfg.Metrics.SetInflightTasks(atomic.LoadInt64(&idx.inflight))

	task := func(ctx context.Context) error {
		defer func() {
			atomic.AddInt64(&idx.inflight, -1)
			idx.cfg.Metrics.SetInflightTasks(atomic.LoadInt64(&idx.inflight))
		}()
		ci := inverter.New(idx.registry, idx.lengths)
		if err := ci.InitAnalyzer(idx.cfg.AnalyzerName); err != nil {
			return err
		}
		start := time.Now()
		ci.InvertColumn(col, rowOffset, rowCount, rowIDBase)
		idx.cfg.Metrics.ObserveInvertSeconds(time.Since(start).Seconds())
		idx.pushReady(ci)
		idx.cfg.Metrics.ObserveInsert(rowCount)
		return nil
	}

	if async {
		idx.pool.Submit(task)
		return nil
	}
	return task(context.Background())
}

func (idx *MemoryIndexer) pushReady(ci *inverter.ColumnInverter) {
	idx.queueMu.Lock()
	idx.ready = append(idx.ready, ci)
	idx.queueMu.Unlock()
}

// GetInflightTasks returns the number of Insert calls whose inversion has not
// yet finished and been pushed onto the ready queue.
func (idx *MemoryIndexer) GetInflightTasks() int64 {
	return atomic.LoadInt64(&idx.inflight)
}

// commitStep performs one unit of commit-worker progress: merging a pair of
// ready inverters, or (once exactly one remains and no inversion is inflight)
// sorting and replaying it into the writer map. It reports whether it did
// anything, so CommitSync can loop until there is nothing left to do.
func (idx *MemoryIndexer) commitStep() bool {
	idx.queueMu.Lock()
	switch {
	case len(idx.ready) >= 2:
		a, b := idx.ready[0], idx.ready[1]
		idx.ready = idx.ready[2:]
		idx.queueMu.Unlock()
		a.Merge(b)
		idx.queueMu.Lock()
		idx.ready = append(idx.ready, a)
		idx.queueMu.Unlock()
		return true

	case len(idx.ready) == 1 && atomic.LoadInt64(&idx.inflight) == 0:
		ci := idx.ready[0]
		idx.ready = idx.ready[:0]
		idx.queueMu.Unlock()

		ci.Sort()
		idx.mapMu.Lock()
		ci.GeneratePosting(inverter.ProviderFunc(idx.writerFor))
		idx.mapMu.Unlock()
		return true

	default:
		idx.queueMu.Unlock()
		return false
	}
}

// writerFor returns term's writer, constructing it on first use. Callers must
// hold mapMu.
func (idx *MemoryIndexer) writerFor(term string) *posting.Writer {
	w, ok := idx.writers[term]
	if !ok {
		w = posting.NewWriter(posting.Config{BlockSize: idx.cfg.BlockSize, PositionsEnabled: idx.cfg.PositionsEnabled})
		idx.writers[term] = w
	}
	return w
}

// CommitSync runs commit-worker steps on the calling goroutine until the
// ready queue is drained (or nothing more can be done because inversions are
// still inflight).
func (idx *MemoryIndexer) CommitSync() {
	for idx.commitStep() {
	}
}

// chunkPath returns the path, relative to ns, that Dump writes and Load reads
// for this indexer's chunk: ft/<chunk_name><suffix>. The segment id is not
// part of it; a namespace rooted at <data_dir>/<segment_id> gives the
// <data_dir>/<segment_id>/ft/<chunk_name>.idx layout.
func (idx *MemoryIndexer) chunkPath(suffix string) string {
	return path.Join("ft", idx.cfg.ChunkName+suffix)
}

// Dump waits for inflight inversions and the commit queue to drain, seals
// every writer, and writes a chunk file. If spill, the same bytes are also
// written to a sidecar ".spill" file so a later Load can reconstruct the
// writers (unsealed) for resumed ingestion. On success the writer map is
// cleared; on I/O failure the partly written file is removed and the writer
// map is kept, so the caller may retry Dump. The kept writers stay sealed:
// a later AddPosition on one of them panics.
func (idx *MemoryIndexer) Dump(force, spill bool) (err error) {
	defer func() { idx.cfg.Metrics.ObserveDump(err) }()

	if err = idx.pool.Join(); err != nil {
		return err
	}
	idx.CommitSync()

	if atomic.LoadInt64(&idx.inflight) != 0 {
		codeerrors.Invariant("indexer.MemoryIndexer: Dump observed inflight work after pool.Join")
	}

	idx.mapMu.Lock()
	defer idx.mapMu.Unlock()

	if len(idx.writers) == 0 && !force {
		return nil
	}

	for _, w := range idx.writers {
		w.Seal()
	}

	raw := chunk.Build(idx.writers, idx.cfg.PositionsEnabled)

	if err := fsio.WriteAll(idx.ns, idx.chunkPath(".idx"), raw); err != nil {
		_ = idx.ns.Remove(idx.chunkPath(".idx"))
		return err
	}
	if spill {
		if err := fsio.WriteAll(idx.ns, idx.chunkPath(".spill"), raw); err != nil {
			_ = idx.ns.Remove(idx.chunkPath(".spill"))
			return err
		}
	}

	idx.writers = make(map[string]*posting.Writer)
	return nil
}

// Load reads a previously spilled chunk back into live, unsealed writers,
// suitable for resumed ingestion. It replaces the current writer map.
func (idx *MemoryIndexer) Load() error {
	raw, err := fsio.ReadAll(idx.ns, idx.chunkPath(".spill"))
	if err != nil {
		return err
	}
	c, err := chunk.Open(raw)
	if err != nil {
		return err
	}

	writers := make(map[string]*posting.Writer, len(c.Terms()))
	for _, entry := range c.Terms() {
		src, ok := c.Lookup(entry.Term)
		if !ok {
			continue
		}
		w, err := posting.Rebuild(src, idx.cfg.BlockSize)
		if err != nil {
			return err
		}
		writers[entry.Term] = w
	}

	idx.mapMu.Lock()
	idx.writers = writers
	idx.mapMu.Unlock()
	return nil
}

// Snapshot returns a term->posting.Source map reflecting the indexer's current
// contents, including any not-yet-sealed writers, for queries to read against
// without blocking ingest.
func (idx *MemoryIndexer) Snapshot() map[string]posting.Source {
	idx.mapMu.Lock()
	defer idx.mapMu.Unlock()

	out := make(map[string]posting.Source, len(idx.writers))
	for term, w := range idx.writers {
		out[term] = w.Snapshot()
	}
	return out
}

// Terms returns the currently indexed term names, sorted, for diagnostics.
func (idx *MemoryIndexer) Terms() []string {
	idx.mapMu.Lock()
	defer idx.mapMu.Unlock()

	terms := make([]string, 0, len(idx.writers))
	for term := range idx.writers {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// ColumnLength returns docid's token count, as accumulated by every inverter
// that has processed a row with that docid.
func (idx *MemoryIndexer) ColumnLength(docid rowid.RowID) uint32 {
	return idx.lengths.Get(docid)
}
