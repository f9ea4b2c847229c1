package instance

import (
	"context"
)

type command struct {
	fn   func(*Engine) error
	resp chan error
}

// Runner owns an Engine on a single goroutine. Every read or write of the
// instance goes through Do, so commands for one instance never interleave.
type Runner struct {
	engine *Engine
	inbox  chan command
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner starts the owning goroutine. It exits when ctx is cancelled or
// Stop is called.
func NewRunner(ctx context.Context, engine *Engine) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	r := &Runner{
		engine: engine,
		inbox:  make(chan command, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go r.run(ctx)
	return r
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-r.inbox:
			cmd.resp <- cmd.fn(r.engine)
		}
	}
}

// ID returns the id of the owned instance
func (r *Runner) ID() string {
	return r.engine.ID()
}

// Do runs fn on the owning goroutine and waits for it to return. A ctx that
// is done before the command is queued fails with ctx.Err() and fn never
// runs. Once queued, Do waits for fn's result regardless of ctx.
func (r *Runner) Do(ctx context.Context, fn func(*Engine) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := command{fn: fn, resp: make(chan error, 1)}

	select {
	case r.inbox <- cmd:
	case <-r.done:
		return ErrInstanceFinished
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.resp:
		return err
	case <-r.done:
		// the loop may have picked the command up just before exiting
		select {
		case err := <-cmd.resp:
			return err
		default:
			return ErrInstanceFinished
		}
	}
}

// Stop ends the owning goroutine and waits for it to exit
func (r *Runner) Stop() {
	r.cancel()
	<-r.done
}
