package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; waiters receive the leader's result.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. The boolean result reports whether
// the caller shared another goroutine's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}

	if leader, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-leader.done
		return leader.val, leader.err, true
	}

	r := &flightResult{done: make(chan struct{})}
	g.inflight[key] = r
	g.mu.Unlock()

	r.val, r.err = fn()
	close(r.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return r.val, r.err, false
}
