package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	var shared atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, wasShared := g.Do("introspect:token", func() (any, error) {
				executions.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "ok" {
				t.Errorf("unexpected value: %v", v)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("function ran %d times, want 1", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("%d callers reported shared, want %d", got, workers-1)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32

	loader := func() (any, error) {
		executions.Add(1)
		return nil, nil
	}

	if _, err, _ := g.Do("key-a", loader); err != nil {
		t.Fatalf("key-a call failed: %v", err)
	}
	if _, err, _ := g.Do("key-b", loader); err != nil {
		t.Fatalf("key-b call failed: %v", err)
	}

	if got := executions.Load(); got != 2 {
		t.Fatalf("function ran %d times, want 2", got)
	}
}
