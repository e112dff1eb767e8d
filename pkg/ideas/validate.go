package ideas

import (
	"fmt"
	"strings"
)

// Enumerated values accepted for the difficulty and mode fields.
// Matching is case-insensitive.
var (
	Difficulties = []string{"beginner", "intermediate", "advanced", "easy", "medium", "hard"}
	Modes        = []string{"hackathon", "startup", "academic", "beginner", "personal", "learning"}
)

// ValidationError describes a request that failed validation after
// sanitization. Field is empty when the error spans multiple fields.
type ValidationError struct {
	// Field is the name of the offending field, if a single field is at fault.
	Field string

	// Message is the caller-facing description of the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validate checks the invariants that sanitization cannot guarantee:
// required fields must be non-empty and enumerated fields must hold a
// known value. The missing-field error deliberately does not say which
// field is missing.
func (r *IdeaRequest) Validate() error {
	if r.Domain == "" || r.Audience == "" || r.Difficulty == "" || r.Mode == "" {
		return &ValidationError{
			Message: "Missing required fields: domain, audience, difficulty and mode are required",
		}
	}

	if !ValidDifficulty(r.Difficulty) {
		return &ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("Invalid difficulty level. Must be one of: %s", strings.Join(Difficulties, ", ")),
		}
	}

	if !ValidMode(r.Mode) {
		return &ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("Invalid mode. Must be one of: %s", strings.Join(Modes, ", ")),
		}
	}

	return nil
}

// ValidDifficulty reports whether s is an accepted difficulty level.
func ValidDifficulty(s string) bool {
	return containsFold(Difficulties, s)
}

// ValidMode reports whether s is an accepted generation mode.
func ValidMode(s string) bool {
	return containsFold(Modes, s)
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
