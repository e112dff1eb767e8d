// Package ideas defines the request and response domain types for project
// idea generation, along with the input sanitization and validation rules
// applied to inbound requests.
//
// All sanitization is lossy and infallible: unacceptable input degrades to
// an empty string or a default value rather than producing an error. Errors
// only arise at the validation stage, when required fields are empty or an
// enumerated field holds an unknown value.
package ideas
