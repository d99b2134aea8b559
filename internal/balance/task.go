package balance

import (
	"context"

	"github.com/okmeme/okmeme-wallet/internal/model"
)

// Task is a balance fetch running in its own goroutine.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}

	balance model.Balance
	err     error
}

// Start begins fetching in the background. Cancelling ctx or calling
// Cancel aborts the fetch.
func (q *Query) Start(ctx context.Context, address string, chain model.Chain) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		t.balance, t.err = q.fetch(ctx, address, chain)
	}()

	return t
}

// Done is closed when the fetch has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel aborts the fetch. It does not wait for it to finish.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the fetch finishes and returns its result.
func (t *Task) Wait() (model.Balance, error) {
	<-t.done
	return t.balance, t.err
}
