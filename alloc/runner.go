package alloc

import (
	"errors"
	"sync"
)

// ErrPassInFlight is returned when a pass is requested while another is active.
var ErrPassInFlight = errors.New("an allocation pass is already in flight")

// Runner serializes allocation passes: at most one pass may be active at a
// time system-wide. A caller that triggers an asynchronous pass must not read
// the result's ledger, budget, or catalogue until the completion channel
// delivers. That delivery is the pass's single completion event.
type Runner struct {
	mu       sync.Mutex
	inFlight bool
}

// Run executes a pass synchronously. It returns ErrPassInFlight if another
// pass is active, so the single-active-pass invariant holds for any mix of
// Run and RunAsync.
func (r *Runner) Run(households []*Household, catalogue []ResourceType, budget int64, deps PassDeps) (*PassResult, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	defer r.release()
	return RunPass(households, catalogue, budget, deps)
}

// PassOutcome carries the completion event of an asynchronous pass.
type PassOutcome struct {
	Result *PassResult
	Err    error
}

// RunAsync starts a pass on a background goroutine so an interactive caller
// stays responsive. It returns ErrPassInFlight immediately if another pass is
// active; otherwise the returned channel delivers exactly one outcome and is
// then closed. The inputs must not be touched until that delivery.
func (r *Runner) RunAsync(households []*Household, catalogue []ResourceType, budget int64, deps PassDeps) (<-chan PassOutcome, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	done := make(chan PassOutcome, 1)
	go func() {
		defer r.release()
		result, err := RunPass(households, catalogue, budget, deps)
		done <- PassOutcome{Result: result, Err: err}
		close(done)
	}()
	return done, nil
}

func (r *Runner) acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight {
		return ErrPassInFlight
	}
	r.inFlight = true
	return nil
}

func (r *Runner) release() {
	r.mu.Lock()
	r.inFlight = false
	r.mu.Unlock()
}
