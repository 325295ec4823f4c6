package common

import "encoding/json"

// Field is a tri-state JSON input value. It distinguishes a field that was
// absent from the request body, one that was sent as an explicit null, and one
// that carries a value. Admin update payloads rely on this to tell "leave
// unchanged" apart from "clear".
type Field struct {
	present bool
	value   interface{}
}

func (f *Field) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.value = nil
		return nil
	}
	return json.Unmarshal(data, &f.value)
}

// Present reports whether the field appeared in the request body at all.
func (f Field) Present() bool { return f.present }

// Null reports an explicit JSON null.
func (f Field) Null() bool { return f.present && f.value == nil }

// EmptyString reports an explicit "" value.
func (f Field) EmptyString() bool {
	s, ok := f.value.(string)
	return f.present && ok && s == ""
}

// Blank reports null or empty string, the two "no value" spellings loose
// frontends send.
func (f Field) Blank() bool { return f.Null() || f.EmptyString() }

// Value returns the decoded value; nil when absent or null.
func (f Field) Value() interface{} { return f.value }
