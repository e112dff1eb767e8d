package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ideaforge-hq/ideaforge/pkg/ideas"
)

// MaxRequestBytes is the inbound body cap. The size middleware rejects
// declared lengths above it and installs a hard MaxBytesReader cap at the
// same value.
const MaxRequestBytes = 10_000

// ParseIdeaRequest reads and decodes the request body. An empty or
// undecodable body yields a BadRequestError; a body that trips the
// MaxBytesReader cap yields a BodyTooLargeError.
func ParseIdeaRequest(r *http.Request) (*ideas.RawIdeaRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &BodyTooLargeError{Limit: maxBytesErr.Limit}
		}
		return nil, &BadRequestError{Message: MsgInvalidBody, Cause: err}
	}

	if len(body) == 0 {
		return nil, &BadRequestError{Message: MsgInvalidBody}
	}

	var raw ideas.RawIdeaRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &BadRequestError{Message: MsgInvalidBody, Cause: err}
	}

	return &raw, nil
}
