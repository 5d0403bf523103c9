package client

import "context"

// Future is the pending result of a submitted call. It resolves exactly
// once, to either a payload or an error.
type Future struct {
	done  chan struct{}
	value string
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolved(value string, err error) *Future {
	f := newFuture()
	f.resolve(value, err)
	return f
}

func (f *Future) resolve(value string, err error) {
	f.value, f.err = value, err
	close(f.done)
}

// Get blocks until the call completes.
func (f *Future) Get() (string, error) {
	<-f.done
	return f.value, f.err
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait is Get bounded by ctx. Giving up does not cancel the call itself.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
