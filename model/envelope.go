package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Envelope wraps every response of the review backend. Success is nil when the
// body carried no success flag; Data stays raw until the caller knows its type.
type Envelope struct {
	Success    *bool           `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Errors     ErrorList       `json:"errors,omitempty"`
}

// HasData reports whether data is present and not null.
func (e *Envelope) HasData() bool {
	b := bytes.TrimSpace(e.Data)
	return len(b) > 0 && !bytes.Equal(b, []byte("null"))
}

// ErrorList holds field-level error messages. It decodes a list, an object of
// field to message (ordered by field), a single string, or nesting of those.
// Values it cannot read as text are dropped so the message can stand in.
type ErrorList []string

// UnmarshalJSON never fails; unusable values decode to an empty list.
func (l *ErrorList) UnmarshalJSON(b []byte) error {
	*l = errorMessages(b)
	return nil
}

func errorMessages(b []byte) []string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if json.Unmarshal(b, &s) != nil || strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(b, &items) != nil {
			return nil
		}
		return lo.FlatMap(items, func(item json.RawMessage, _ int) []string {
			return errorMessages(item)
		})
	case '{':
		var fields map[string]json.RawMessage
		if json.Unmarshal(b, &fields) != nil {
			return nil
		}
		names := lo.Keys(fields)
		slices.Sort(names)
		return lo.FlatMap(names, func(name string, _ int) []string {
			return errorMessages(fields[name])
		})
	default:
		return nil
	}
}

// Some returns a pointer to v, for filling optional fields.
func Some[T any](v T) *T {
	return &v
}
