package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSON names of the fields the service understands. Anything else a caller
// sends on update is stored verbatim in Extra.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldCompleted = "completed"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Todo is a single task on the list.
//
// UpdatedAt is nil until the first update. Extra holds caller-supplied fields
// that have no typed counterpart; it never contains one of the Field* keys.
type Todo struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	Extra     map[string]json.RawMessage
}

// todoJSON fixes the wire names and ordering of the known fields.
type todoJSON struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Timestamp normalises t the way every stored timestamp is kept: UTC with
// millisecond precision.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NewTodo creates an incomplete Todo with a fresh id. The title is trimmed
// and must not be blank.
func NewTodo(title string, now time.Time) (*Todo, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, NewValidationError(FieldTitle, "is required", ErrEmptyTitle)
	}

	return &Todo{
		ID:        uuid.NewString(),
		Title:     trimmed,
		Completed: false,
		CreatedAt: Timestamp(now),
	}, nil
}

// Apply shallow-merges p onto the todo and stamps UpdatedAt with now.
// Fields absent from p keep their values.
func (t *Todo) Apply(p Patch, now time.Time) {
	if p.ID != nil {
		t.ID = *p.ID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CreatedAt != nil {
		t.CreatedAt = Timestamp(*p.CreatedAt)
	}
	if len(p.Extra) > 0 {
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage, len(p.Extra))
		}
		for k, v := range p.Extra {
			t.Extra[k] = v
		}
	}

	stamp := Timestamp(now)
	t.UpdatedAt = &stamp
}

// Clone returns a deep copy so stored records never alias caller memory.
func (t *Todo) Clone() *Todo {
	c := *t
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	if t.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

// MarshalJSON writes the known fields first, then Extra in key order.
func (t Todo) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(todoJSON{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}
	if len(t.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		if isKnownField(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		if err := json.Compact(&buf, t.Extra[k]); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a record in the format produced by MarshalJSON.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var out Todo
	if p.ID != nil {
		out.ID = *p.ID
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	}
	out.UpdatedAt = p.updatedAt
	out.Extra = p.Extra

	*t = out
	return nil
}

func isKnownField(name string) bool {
	switch name {
	case FieldID, FieldTitle, FieldCompleted, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}
