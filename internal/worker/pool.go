package worker

import (
	"context"
	"sync"
)

// Job is one unit of work, typically one claim to verify
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job
type Result interface {
	GetError() error
}

type queued struct {
	seq int
	job Job
}

type done struct {
	seq    int
	result Result
}

// Pool runs jobs on a fixed number of workers and returns results in
// submission order
type Pool struct {
	workers    int
	jobQueue   chan queued
	results    chan done
	collected  map[int]Result
	submitted  int
	mu         sync.Mutex
	wg         sync.WaitGroup
	collector  sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	queueOnce  sync.Once
}

// NewPool creates a pool bound to ctx. Cancelling ctx stops the workers.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan queued, workers*2),
		results:    make(chan done, workers*2),
		collected:  make(map[int]Result),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers and the result collector
func (p *Pool) Start() {
	p.collector.Add(1)
	go p.collect()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case q, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- done{seq: q.seq, result: q.job.Execute(p.ctx)}
		}
	}
}

// collect drains results as they arrive so workers never block on a full channel
func (p *Pool) collect() {
	defer p.collector.Done()

	for d := range p.results {
		p.mu.Lock()
		p.collected[d.seq] = d.result
		p.mu.Unlock()
	}
}

// Submit queues a job and reports whether it was accepted. Every call takes
// a slot in the Wait result, so rejected jobs show up there as nil.
// Submit must not be called after Wait.
func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	seq := p.submitted
	p.submitted++
	p.mu.Unlock()

	if p.ctx.Err() != nil {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- queued{seq: seq, job: job}:
		return true
	}
}

// Wait waits for every queued job and returns one entry per Submit call, in
// submission order. Rejected jobs and jobs dropped by a shutdown are nil.
func (p *Pool) Wait() []Result {
	p.closeQueue()
	p.wg.Wait()
	p.closeResults()
	p.collector.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]Result, p.submitted)
	for seq := range results {
		results[seq] = p.collected[seq]
	}
	return results
}

// Shutdown stops the workers without waiting for queued jobs
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
	p.collector.Wait()
}

func (p *Pool) closeQueue() {
	p.queueOnce.Do(func() {
		close(p.jobQueue)
	})
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
