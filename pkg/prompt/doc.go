// Package prompt renders sanitized idea requests into the instruction pair
// sent to the model gateway: a fixed system instruction carrying the output
// schema contract, and a user instruction interpolating the request fields.
//
// Building a prompt is a pure function: the same sanitized request always
// produces the same two strings.
package prompt
