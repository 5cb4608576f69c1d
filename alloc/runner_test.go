package alloc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateEstimator blocks inside the pass until released, exposing the in-flight
// window to the test.
type gateEstimator struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gateEstimator) Estimate(h *Household) (Profile, error) {
	close(g.entered)
	<-g.release
	return Profile{TrueSize: len(h.Ages), ExpectedSize: float64(len(h.Ages))}, nil
}

func TestRunner_RejectsConcurrentPass(t *testing.T) {
	gate := &gateEstimator{entered: make(chan struct{}), release: make(chan struct{})}
	deps := exactDeps(false)
	deps.Estimator = gate

	h := mustHousehold(t, 1, "", []int{30})
	var runner Runner

	done, err := runner.RunAsync([]*Household{h}, foodAndHygiene(), 1000, deps)
	require.NoError(t, err)

	select {
	case <-gate.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("async pass never started")
	}

	_, err = runner.Run([]*Household{h}, foodAndHygiene(), 1000, exactDeps(false))
	assert.ErrorIs(t, err, ErrPassInFlight)

	_, err = runner.RunAsync([]*Household{h}, foodAndHygiene(), 1000, exactDeps(false))
	assert.ErrorIs(t, err, ErrPassInFlight)

	close(gate.release)
	outcome := <-done
	require.NoError(t, outcome.Err)
	assert.Len(t, outcome.Result.Ledger, 1)

	// Channel closes after the single delivery.
	_, open := <-done
	assert.False(t, open)

	// The slot frees once the pass completes.
	result, err := runner.Run([]*Household{h}, foodAndHygiene(), 1000, exactDeps(false))
	require.NoError(t, err)
	assert.Len(t, result.Ledger, 1)
}

func TestRunner_AsyncDeliversErrors(t *testing.T) {
	var runner Runner
	h := mustHousehold(t, 1, "", []int{30})

	done, err := runner.RunAsync([]*Household{h}, foodAndHygiene(), -5, exactDeps(false))
	require.NoError(t, err)

	outcome := <-done
	assert.Error(t, outcome.Err)
	assert.Nil(t, outcome.Result)

	// A failed pass must release the slot too.
	_, err = runner.Run([]*Household{h}, foodAndHygiene(), 1000, exactDeps(false))
	assert.NoError(t, err)
}
