// Package api implements the HTTP boundary of the idea-generation
// service: body parsing, the generation pipeline handler, and the
// translation of internal errors into stable caller-facing responses.
//
// Every failure is converted at this boundary into a {"error": string}
// JSON body with a status in {400, 402, 413, 429, 500}. Internal detail
// goes to the log channel only, never to the caller.
package api
