package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Patch is a partial todo sent on update. Nil fields are left untouched.
// Unknown fields are carried in Extra and merged verbatim.
type Patch struct {
	ID        *string
	Title     *string
	Completed *bool
	CreatedAt *time.Time
	Extra     map[string]json.RawMessage

	// updatedAt is only read back when decoding a full Todo; the service
	// always overwrites it on update.
	updatedAt *time.Time
}

// IsEmpty reports whether the patch would change no field.
func (p Patch) IsEmpty() bool {
	return p.ID == nil && p.Title == nil && p.Completed == nil && p.CreatedAt == nil && len(p.Extra) == 0
}

// UnmarshalJSON decodes a JSON object into a Patch. Known fields must carry
// their JSON type; a null value for a known field means "not provided".
func (p *Patch) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = Patch{}
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return NewValidationError("body", "must be a JSON object", ErrInvalidFormat)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return NewValidationError("body", "must be a JSON object", ErrInvalidFormat)
	}

	var out Patch
	for name, raw := range fields {
		switch name {
		case FieldID:
			if err := json.Unmarshal(raw, &out.ID); err != nil {
				return NewValidationError(name, "must be a string", ErrInvalidFormat)
			}
			if out.ID != nil && *out.ID == "" {
				return NewValidationError(name, "cannot be empty", ErrValidation)
			}
		case FieldTitle:
			if err := json.Unmarshal(raw, &out.Title); err != nil {
				return NewValidationError(name, "must be a string", ErrInvalidFormat)
			}
		case FieldCompleted:
			if err := json.Unmarshal(raw, &out.Completed); err != nil {
				return NewValidationError(name, "must be a boolean", ErrInvalidFormat)
			}
		case FieldCreatedAt:
			if err := json.Unmarshal(raw, &out.CreatedAt); err != nil {
				return NewValidationError(name, "must be an ISO-8601 timestamp", ErrInvalidFormat)
			}
		case FieldUpdatedAt:
			// Ignored on update; kept for decoding full records.
			if err := json.Unmarshal(raw, &out.updatedAt); err != nil {
				return NewValidationError(name, "must be an ISO-8601 timestamp", ErrInvalidFormat)
			}
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[name] = append(json.RawMessage(nil), raw...)
		}
	}

	*p = out
	return nil
}
