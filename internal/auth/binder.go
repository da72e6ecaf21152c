package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/tritonops/admin-gateway/internal/directory"
)

// ErrPoolClosed is returned for submissions after Close.
var ErrPoolClosed = errors.New("bind pool closed")

// BindPool runs directory binds on a fixed set of workers so a slow or
// hung directory server cannot tie up request handlers.
type BindPool struct {
	client directory.Client
	jobs   chan bindJob
	once   sync.Once
	wg     sync.WaitGroup
}

type bindJob struct {
	ctx      context.Context
	username string
	password string
	result   chan bindResult
}

type bindResult struct {
	record *directory.Record
	err    error
}

// NewBindPool starts the workers.
func NewBindPool(client directory.Client, workers int) *BindPool {
	if workers <= 0 {
		workers = 4
	}
	pool := &BindPool{
		client: client,
		jobs:   make(chan bindJob),
	}
	pool.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go pool.worker()
	}
	return pool
}

func (p *BindPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		record, err := p.client.BindAndFetch(job.ctx, job.username, job.password)
		job.result <- bindResult{record: record, err: err}
	}
}

// Do dispatches a bind-and-fetch to the pool and waits for the outcome or
// the context deadline, whichever comes first.
func (p *BindPool) Do(ctx context.Context, username, password string) (*directory.Record, error) {
	job := bindJob{
		ctx:      ctx,
		username: username,
		password: password,
		result:   make(chan bindResult, 1),
	}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-job.result:
		return res.record, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting work and waits for in-flight binds to finish.
func (p *BindPool) Close() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
