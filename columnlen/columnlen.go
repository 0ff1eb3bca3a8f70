// Package columnlen implements a column-length vector: a docid-keyed counter
// that every ColumnInverter operating over the same segment increments
// concurrently, so it uses a fine-grained (per-shard) lock rather than one
// mutex guarding the whole vector.
package columnlen

import (
	"encoding/binary"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/neganovalexey/ftindex/rowid"
)

const shardCount = 32

// Vector is a concurrency-safe docid -> token-count map. Zero value is not
// usable; construct with New.
type Vector struct {
	shards [shardCount]shard
}

type shard struct {
	mu     sync.Mutex
	counts map[rowid.RowID]uint32
}

// New returns an empty Vector.
func New() *Vector {
	v := &Vector{}
	for i := range v.shards {
		v.shards[i].counts = make(map[rowid.RowID]uint32)
	}
	return v
}

// shardFor picks docid's shard by hashing rather than a plain modulo, so
// sequentially-assigned RowIDs (InvertColumn hands them out in order) don't
// pile onto a handful of shards and defeat the point of sharding.
func (v *Vector) shardFor(docid rowid.RowID) *shard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(docid))
	h := murmur3.Sum32(buf[:])
	return &v.shards[h%uint32(shardCount)]
}

// Add increments docid's length by delta, initializing it to delta if unseen.
func (v *Vector) Add(docid rowid.RowID, delta uint32) {
	s := v.shardFor(docid)
	s.mu.Lock()
	s.counts[docid] += delta
	s.mu.Unlock()
}

// Get returns docid's accumulated length, or 0 if never touched.
func (v *Vector) Get(docid rowid.RowID) uint32 {
	s := v.shardFor(docid)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[docid]
}

// Len returns the number of distinct docids tracked, for diagnostics and tests.
func (v *Vector) Len() int {
	n := 0
	for i := range v.shards {
		v.shards[i].mu.Lock()
		n += len(v.shards[i].counts)
		v.shards[i].mu.Unlock()
	}
	return n
}
