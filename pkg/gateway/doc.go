// Package gateway is the client for the upstream chat-completion API.
//
// The client sends a single non-streaming completion request per call and
// never retries: transient upstream failures surface to the caller
// immediately so the HTTP layer can translate them into stable response
// codes. Errors are typed structs so the boundary can distinguish rate
// limiting and quota exhaustion from everything else with errors.As.
package gateway
