package ratelimit

import (
	"sync"
	"time"
)

// Defaults applied when a Config field is zero.
const (
	DefaultMaxRequests = 20
	DefaultWindow      = time.Hour
)

// Config contains the limits applied to every caller key.
type Config struct {
	// MaxRequests is the number of requests allowed per key per window.
	MaxRequests int

	// Window is the fixed window duration.
	Window time.Duration
}

// Result is the outcome of a single limit check.
type Result struct {
	// Allowed indicates whether the request may proceed.
	Allowed bool

	// Limit is the configured per-window maximum.
	Limit int

	// Remaining is how many requests remain in the current window.
	Remaining int

	// Reset is when the caller's window expires.
	Reset time.Time

	// RetryAfter is how long a denied caller should wait before retrying.
	// Zero when Allowed.
	RetryAfter time.Duration
}

// record tracks one caller key's current window.
type record struct {
	count int
	reset time.Time
}

// FixedWindow is a keyed fixed-window counter.
//
// Records are created on first sight of a key and reset in place once
// their window has elapsed; the sweeper removes records whose window has
// expired between requests.
type FixedWindow struct {
	mu      sync.Mutex
	cfg     Config
	records map[string]*record

	// now is swappable for tests.
	now func() time.Time
}

// New creates a fixed-window limiter, applying defaults for zero fields.
func New(cfg Config) *FixedWindow {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	return &FixedWindow{
		cfg:     cfg,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Check consumes a request slot for key if one is available.
//
// On first sight of a key, or once the key's window has elapsed, the
// record resets to count=1 with a fresh expiry and the request is allowed.
// At the limit the request is denied without incrementing, so a denied
// caller does not extend its own penalty.
func (l *FixedWindow) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cfg := l.cfg

	rec, exists := l.records[key]
	if !exists || now.After(rec.reset) || now.Equal(rec.reset) {
		rec = &record{count: 1, reset: now.Add(cfg.Window)}
		l.records[key] = rec
		return Result{
			Allowed:   true,
			Limit:     cfg.MaxRequests,
			Remaining: cfg.MaxRequests - 1,
			Reset:     rec.reset,
		}
	}

	if rec.count >= cfg.MaxRequests {
		return Result{
			Allowed:    false,
			Limit:      cfg.MaxRequests,
			Remaining:  0,
			Reset:      rec.reset,
			RetryAfter: rec.reset.Sub(now),
		}
	}

	rec.count++
	return Result{
		Allowed:   true,
		Limit:     cfg.MaxRequests,
		Remaining: cfg.MaxRequests - rec.count,
		Reset:     rec.reset,
	}
}

// Sweep removes records whose window has expired and returns how many
// were removed. Expired records are semantically equivalent to absent
// ones, so sweeping never changes the outcome of a Check.
func (l *FixedWindow) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, rec := range l.records {
		if !now.Before(rec.reset) {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked caller keys.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Window returns the configured window duration.
func (l *FixedWindow) Window() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg.Window
}

// SetConfig replaces the limiter configuration. Existing records keep
// their current expiry; the new limits apply from the next Check.
// This is the hook used by configuration hot reload.
func (l *FixedWindow) SetConfig(cfg Config) {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg
}
