package parallel

import "sync"

// StepBarrier is a reusable rendezvous for a fixed number of parties.
// The last party to arrive releases the others and resets the barrier for
// the next step.
type StepBarrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int
	gen     uint64
}

// NewStepBarrier returns an unarmed barrier.
func NewStepBarrier() *StepBarrier {
	b := &StepBarrier{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// StartAction arms the barrier for n parties. It has no effect while a
// step is in progress.
func (b *StepBarrier) StartAction(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.arrived == 0 {
		b.parties = n
	}
}

// WaitHere blocks until all parties of the current step have arrived.
// An unarmed barrier is armed with n by the first arrival.
func (b *StepBarrier) WaitHere(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.parties == 0 {
		b.parties = n
	}
	gen := b.gen
	b.arrived++
	if b.arrived >= b.parties {
		b.arrived = 0
		b.parties = 0
		b.gen++
		b.cond.Broadcast()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
}
