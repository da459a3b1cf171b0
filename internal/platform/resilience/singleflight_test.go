package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[int]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("ranking:2025", func() (int, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return 42, nil
			})
			if err != nil || v != 42 {
				t.Errorf("singleflight call failed: %d %v", v, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
}

func TestSingleFlight_PropagatesError(t *testing.T) {
	var g SingleFlight[string]
	boom := errors.New("boom")

	_, err, shared := g.Do("k", func() (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if shared {
		t.Fatalf("single caller should not be shared")
	}

	v, err, _ := g.Do("k", func() (string, error) { return "again", nil })
	if err != nil || v != "again" {
		t.Fatalf("key should be released after the first call: %q %v", v, err)
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	var g SingleFlight[int]
	started := make(chan struct{})
	release := make(chan struct{})

	first := make(chan int, 1)
	go func() {
		v, _, _ := g.Do("ranking:2025", func() (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		first <- v
	}()

	<-started
	g.Forget("ranking:2025")
	v, _, shared := g.Do("ranking:2025", func() (int, error) { return 2, nil })
	if v != 2 || shared {
		t.Fatalf("expected a fresh call after Forget, got %d shared=%v", v, shared)
	}

	close(release)
	if got := <-first; got != 1 {
		t.Fatalf("forgotten call should still return its own result, got %d", got)
	}
}
