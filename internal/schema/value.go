package schema

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindBool   ValueKind = "bool"
)

// Value is a recorded answer: a tagged string-or-bool variant. The zero Value
// means unanswered. On the wire it is a bare JSON string or boolean, matching
// the persisted snapshot and export document shapes.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
}

// String wraps a text or option answer.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Bool wraps a boolean answer.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IsZero reports whether no answer has been recorded.
func (v Value) IsZero() bool {
	return v.Kind == ""
}

// Answered reports whether the value counts as an answer for required-field
// checks. An empty string does not.
func (v Value) Answered() bool {
	switch v.Kind {
	case KindString:
		return v.Str != ""
	case KindBool:
		return true
	default:
		return false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	// json.Unmarshal leaves the target untouched for a literal null, so the
	// bool probe below would report it as an answered false. A null leaf
	// means unanswered.
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Boolean(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	return fmt.Errorf("answer value must be a string or a boolean, got %s", string(data))
}
