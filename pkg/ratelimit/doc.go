// Package ratelimit implements the per-caller fixed-window request limiter.
//
// A fixed window resets its counter entirely once the window boundary is
// crossed, as opposed to a sliding or token-bucket scheme. State lives in a
// mutex-guarded in-process map keyed by caller identity: limiting is
// best-effort and single-instance, suitable for abuse mitigation but not
// billing-grade enforcement. A cron-driven sweeper prunes expired records
// so the key set does not grow without bound.
package ratelimit
