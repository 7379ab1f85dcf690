package shared

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleInt decodes an optional integer field that clients send either as a
// JSON number or as a numeric string. Anything else (null, "", "abc") decodes
// as absent rather than failing the request; the service layer decides the
// default. This replaces the old untyped map extraction with an explicit,
// documented coalescing rule.
type FlexibleInt struct {
	Value int
	Valid bool
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexibleInt{}
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			*f = FlexibleInt{}
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		*f = FlexibleInt{}
		return nil
	}

	*f = FlexibleInt{Value: n, Valid: true}
	return nil
}

func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// IntOr returns the value or a fallback when the field was absent.
func (f FlexibleInt) IntOr(fallback int) int {
	if !f.Valid {
		return fallback
	}
	return f.Value
}
