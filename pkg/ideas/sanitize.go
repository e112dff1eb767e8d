package ideas

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Bounds applied during sanitization.
const (
	// MaxFieldLength is the maximum rune length of any sanitized string field.
	MaxFieldLength = 500

	MinTimeDays     = 1
	MaxTimeDays     = 365
	DefaultTimeDays = 7

	MinIdeaCount     = 1
	MaxIdeaCount     = 5
	DefaultIdeaCount = 3
)

// SanitizeString reduces an arbitrary JSON value to a bounded, prompt-safe
// string. Non-string values degrade to "". Angle brackets are stripped to
// keep markup out of prompts, surrounding whitespace is trimmed, and the
// result is clipped to MaxFieldLength runes.
//
// There is no error path: unacceptable input always degrades to "".
func SanitizeString(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}

	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = strings.TrimSpace(s)

	// Clip by runes so a truncated field is still valid UTF-8.
	if runes := []rune(s); len(runes) > MaxFieldLength {
		s = string(runes[:MaxFieldLength])
	}

	return s
}

// ClampInt coerces an arbitrary JSON value to an integer clamped into
// [min, max]. Values that cannot be interpreted as a number yield fallback.
//
// encoding/json decodes numbers into float64, but clients also send numeric
// strings; both are accepted.
func ClampInt(value interface{}, min, max, fallback int) int {
	var n int

	switch v := value.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return fallback
			}
			parsed = int64(f)
		}
		n = int(parsed)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}

	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
