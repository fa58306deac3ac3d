// Copyright 2025 The go-noise Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs index ranges across a fixed set of goroutines.
//
// A Pool is started once and handed to every generation call that should run in
// parallel, so generating many chunks does not pay for goroutine startup on each
// call:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, c := range chunks {
//	    grid := expr.Generate3DParallel(pool, c.X, c.Y, c.Z, 16, 256, 16)
//	    ...
//	}
//
// *Pool satisfies noise.Runner.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a set of long-lived worker goroutines fed through a shared queue.
type Pool struct {
	workers int
	jobs    chan job
	once    sync.Once
	closed  atomic.Bool
}

type job struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool of n workers. If n <= 0 the pool gets GOMAXPROCS workers.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: n,
		jobs:    make(chan job, n*2),
	}
	for range n {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for j := range p.jobs {
		j.run()
		j.done.Done()
	}
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Close stops the workers once queued jobs have finished. It may be called more
// than once. A closed pool still accepts calls and runs them on the caller's
// goroutine.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.jobs)
	})
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous ranges of equal
// size and calls fn once per range. It returns after every call has finished.
// It suits rows of even cost, such as converting an image row by row.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.ParallelForAtomicBatched(n, (n+p.workers-1)/p.workers, fn)
}

// ParallelForAtomicBatched calls fn on ranges of at most batch indices covering
// [0, n). Workers claim the next range as soon as they finish one, which balances
// uneven per-index cost such as grid columns of very different depth. A batch <= 0
// is treated as 1.
func (p *Pool) ParallelForAtomicBatched(n, batch int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	batch = max(batch, 1)
	claims := (n + batch - 1) / batch
	if claims <= 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	var next atomic.Int64
	claim := func() {
		for {
			start := int(next.Add(int64(batch))) - batch
			if start >= n {
				return
			}
			fn(start, min(start+batch, n))
		}
	}

	workers := min(p.workers, claims)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.jobs <- job{run: claim, done: &wg}
	}
	wg.Wait()
}
