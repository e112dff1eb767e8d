// Package middleware contains the HTTP middleware chain: panic recovery,
// request logging, request IDs, CORS, and the per-route size and rate
// limit guards.
package middleware
