package executor

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parallel runs each batch on a bounded set of worker goroutines. The
// executor is stateless and reusable across many calls; nested batches
// (a task submitting its own batch) get independent worker sets, so
// submission can never deadlock.
type Parallel struct {
	minWorkers int
	maxWorkers int
}

// NewParallel creates a parallel executor. maxWorkers <= 0 selects the
// hardware concurrency; minWorkers acts as a floor when the bounds
// disagree.
func NewParallel(minWorkers, maxWorkers int) *Parallel {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if minWorkers < 1 {
		minWorkers = 1
	}
	if maxWorkers < minWorkers {
		maxWorkers = minWorkers
	}
	return &Parallel{minWorkers: minWorkers, maxWorkers: maxWorkers}
}

// Workers returns the concurrency bound per batch.
func (p *Parallel) Workers() int {
	return p.maxWorkers
}

// SubmitAndWait runs the batch on at most Workers goroutines and blocks
// until every task has finished. The first task panic is returned as an
// error once the whole batch has drained; later tasks still run.
func (p *Parallel) SubmitAndWait(tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(p.maxWorkers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return runTask(task)
		})
	}
	return g.Wait()
}
