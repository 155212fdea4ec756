package exec

import (
	"context"
	"log"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Pool runs actions on a fixed set of workers, routing by hashed key so all
// actions sharing a key run on the same worker, in submission order.
//
// IMPORTANT:
// A Pool assumes each chain runs within a single execution scope. Closing the
// pool cancels its workers; queued actions that have not started yet are
// dropped, so Close only after every chain submitted to it has been awaited.
type Pool struct {
	// PoolId identifies this pool instance in diagnostics.
	PoolId string

	workerChs []chan func()
	closeFn   func()
	closeOnce sync.Once
}

// NewPool starts numWorkers workers, each with a queue of bufferSize actions.
// The pool stops when ctx is done or Close is called.
func NewPool(ctx context.Context, bufferSize, numWorkers int) *Pool {
	if numWorkers < 1 {
		panic("NewPool: number of workers cannot be 0")
	}
	// A worker re-enqueues its chain's next action onto its own channel, so
	// every queue needs room for at least one pending action.
	if bufferSize < 1 {
		bufferSize = 1
	}
	ctx, cancelFn := context.WithCancel(ctx)

	channels := make([]chan func(), numWorkers)
	ready := sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		ready.Add(1)
		ch := make(chan func(), bufferSize)
		go func(ch chan func()) {
			defer close(ch)
			ready.Done()
			for {
				select {
				case run := <-ch:
					run()
				case <-ctx.Done():
					return
				}
			}
		}(ch)
		channels[i] = ch
	}
	ready.Wait()

	return &Pool{
		PoolId:    uuid.New().String(),
		workerChs: channels,
		closeFn:   cancelFn,
	}
}

// Go queues run on the worker owning key.
func (p *Pool) Go(ctx context.Context, key string, run func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf(
				"panic while sending to closed worker channel: %+v",
				map[string]interface{}{
					"poolId": p.PoolId,
					"key":    key,
				},
			)
		}
	}()

	ch := p.workerChs[indexByHash(key, len(p.workerChs))]
	select {
	case <-ctx.Done():
	case ch <- run:
	}
}

// Close cancels the workers. Safe to call more than once, from any goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(p.closeFn)
}

func indexByHash(key string, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numChs))
	}
}
