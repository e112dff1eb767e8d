package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(cfg Config) (*FixedWindow, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	l := New(cfg)
	l.now = clock.Now
	return l, clock
}

func TestFixedWindow_DeniesAtLimit(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxRequests: 20, Window: time.Hour})

	for i := 0; i < 20; i++ {
		res := l.Check("1.2.3.4")
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if want := 20 - (i + 1); res.Remaining != want {
			t.Errorf("request %d: Remaining = %d, want %d", i+1, res.Remaining, want)
		}
	}

	res := l.Check("1.2.3.4")
	if res.Allowed {
		t.Fatal("21st request should be denied")
	}
	if res.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", res.Remaining)
	}
	if res.RetryAfter <= 0 || res.RetryAfter > time.Hour {
		t.Errorf("RetryAfter = %v, want within (0, 1h]", res.RetryAfter)
	}
}

func TestFixedWindow_DenialDoesNotIncrement(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxRequests: 2, Window: time.Hour})

	l.Check("k")
	l.Check("k")

	// Hammer the denied key; the window must not extend.
	for i := 0; i < 50; i++ {
		if res := l.Check("k"); res.Allowed {
			t.Fatal("expected denial")
		}
	}

	clock.Advance(time.Hour + time.Second)

	if res := l.Check("k"); !res.Allowed {
		t.Fatal("request after window elapsed should be allowed")
	}
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxRequests: 20, Window: time.Hour})

	for i := 0; i < 20; i++ {
		l.Check("caller")
	}
	if res := l.Check("caller"); res.Allowed {
		t.Fatal("expected denial at limit")
	}

	clock.Advance(61 * time.Minute)

	res := l.Check("caller")
	if !res.Allowed {
		t.Fatal("expected allowance after window reset")
	}
	if res.Remaining != 19 {
		t.Errorf("Remaining after reset = %d, want 19", res.Remaining)
	}
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxRequests: 1, Window: time.Hour})

	if res := l.Check("a"); !res.Allowed {
		t.Fatal("first request for key a should be allowed")
	}
	if res := l.Check("a"); res.Allowed {
		t.Fatal("second request for key a should be denied")
	}
	if res := l.Check("b"); !res.Allowed {
		t.Fatal("key b should be unaffected by key a")
	}
}

func TestFixedWindow_Defaults(t *testing.T) {
	l := New(Config{})

	res := l.Check("x")
	if res.Limit != DefaultMaxRequests {
		t.Errorf("Limit = %d, want %d", res.Limit, DefaultMaxRequests)
	}
	if l.Window() != DefaultWindow {
		t.Errorf("Window = %v, want %v", l.Window(), DefaultWindow)
	}
}

func TestFixedWindow_Sweep(t *testing.T) {
	l, clock := newTestLimiter(Config{MaxRequests: 5, Window: time.Hour})

	l.Check("a")
	l.Check("b")
	clock.Advance(30 * time.Minute)
	l.Check("c")

	if got := l.Len(); got != 3 {
		t.Fatalf("Len = %d, want 3", got)
	}

	// a and b expire; c is still inside its window.
	clock.Advance(31 * time.Minute)

	removed := l.Sweep()
	if removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if got := l.Len(); got != 1 {
		t.Errorf("Len after sweep = %d, want 1", got)
	}

	// A swept key behaves like a fresh one.
	if res := l.Check("a"); !res.Allowed || res.Remaining != 4 {
		t.Errorf("post-sweep check = %+v, want fresh window", res)
	}
}

func TestFixedWindow_SetConfig(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxRequests: 1, Window: time.Hour})

	l.Check("k")
	if res := l.Check("k"); res.Allowed {
		t.Fatal("expected denial at old limit")
	}

	l.SetConfig(Config{MaxRequests: 5, Window: time.Hour})

	if res := l.Check("k"); !res.Allowed {
		t.Fatal("raised limit should allow the request")
	}
}

func TestFixedWindow_ConcurrentAccess(t *testing.T) {
	l := New(Config{MaxRequests: 1000, Window: time.Hour})

	var wg sync.WaitGroup
	allowed := make([]int, 8)

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if l.Check("shared").Allowed {
					allowed[g]++
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, n := range allowed {
		total += n
	}
	if total != 800 {
		t.Errorf("allowed %d of 800 requests under the limit", total)
	}
}

func TestSweeper_StartStop(t *testing.T) {
	l := New(Config{})
	s := NewSweeper(l, "@every 1h")

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}

	cancel()
	s.Stop() // idempotent
}

func TestSweeper_InvalidSchedule(t *testing.T) {
	l := New(Config{})
	s := NewSweeper(l, "not a schedule")

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
