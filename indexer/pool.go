// Package indexer implements the memory indexer and its worker pool: a
// bounded job queue that inverts column batches concurrently, and a commit
// path that merges, sorts, and replays the results into a shared
// term-to-writer map under a single mutex.
package indexer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool is a bounded worker-thread pool: a submit primitive that may block
// when the queue is full, and a join-all primitive that waits until every
// submitted job has run. golang.org/x/sync/errgroup supplies the join-all
// half, a buffered channel supplies the bound.
type Pool struct {
	sem *semaphore
	g   *errgroup.Group
	ctx context.Context
}

// NewPool returns a Pool with width concurrent workers. width <= 0 means
// unbounded (limited only by however many jobs are submitted before the next
// Join).
func NewPool(ctx context.Context, width int) *Pool {
	g, gctx := errgroup.WithContext(ctx)
	p := &Pool{g: g, ctx: gctx}
	if width > 0 {
		p.sem = newSemaphore(width)
	}
	return p
}

// Submit enqueues fn to run on a pool worker. It blocks if the pool is at its
// width bound. fn's error, if any, is retained and surfaced by the next Join.
func (p *Pool) Submit(fn func(ctx context.Context) error) {
	if p.sem != nil {
		p.sem.acquire()
	}
	p.g.Go(func() error {
		if p.sem != nil {
			defer p.sem.release()
		}
		return fn(p.ctx)
	})
}

// Join blocks until every submitted job has completed, returning the first
// error any job has returned since the Pool was created (if any). Jobs
// submitted after Join returns still run and are waited for by the next Join,
// but the context passed to them is already cancelled, and a recorded error
// is returned again by every later Join.
func (p *Pool) Join() error {
	return p.g.Wait()
}

// semaphore is a minimal counting semaphore built on a buffered channel, the
// idiomatic Go substitute for a bounded queue depth.
type semaphore struct {
	tokens chan struct{}
}

func newSemaphore(n int) *semaphore {
	return &semaphore{tokens: make(chan struct{}, n)}
}

func (s *semaphore) acquire() { s.tokens <- struct{}{} }
func (s *semaphore) release() { <-s.tokens }
