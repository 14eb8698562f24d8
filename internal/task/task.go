// Package task holds the state value a runtime model predicts and its
// plugins read and mutate while attached.
package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Task is the current predicted condition of a task. It has no internal
// locking; the owning model serialises access.
type Task struct {
	ID    string
	attrs *structpb.Struct
}

// New builds a task from plain Go attributes (anything structpb accepts).
func New(attrs map[string]any) (*Task, error) {
	s, err := structpb.NewStruct(attrs)
	if err != nil {
		return nil, fmt.Errorf("task: attributes: %w", err)
	}
	return &Task{ID: uuid.NewString(), attrs: s}, nil
}

// Empty returns a task without attributes.
func Empty() *Task {
	return &Task{ID: uuid.NewString(), attrs: &structpb.Struct{Fields: map[string]*structpb.Value{}}}
}

// Clone deep-copies the task. The copy keeps the ID: it is the same task
// predicted by another model.
func (t *Task) Clone() *Task {
	return &Task{ID: t.ID, attrs: proto.Clone(t.fields()).(*structpb.Struct)}
}

func (t *Task) fields() *structpb.Struct {
	if t.attrs == nil {
		t.attrs = &structpb.Struct{Fields: map[string]*structpb.Value{}}
	}
	if t.attrs.Fields == nil {
		t.attrs.Fields = map[string]*structpb.Value{}
	}
	return t.attrs
}

func (t *Task) Set(key string, value any) error {
	v, err := structpb.NewValue(value)
	if err != nil {
		return fmt.Errorf("task: set %q: %w", key, err)
	}
	t.fields().Fields[key] = v
	return nil
}

func (t *Task) Get(key string) (any, bool) {
	v, ok := t.fields().Fields[key]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// taskJSON is the wire shape of a task: its identity plus attributes.
type taskJSON struct {
	ID         string          `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

func (t *Task) MarshalJSON() ([]byte, error) {
	attrs, err := protojson.Marshal(t.fields())
	if err != nil {
		return nil, fmt.Errorf("task: encode: %w", err)
	}
	return json.Marshal(taskJSON{ID: t.ID, Attributes: attrs})
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("task: decode: %w", err)
	}
	s := &structpb.Struct{}
	if len(raw.Attributes) > 0 {
		if err := protojson.Unmarshal(raw.Attributes, s); err != nil {
			return fmt.Errorf("task: decode attributes: %w", err)
		}
	}
	t.ID, t.attrs = raw.ID, s
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *Task) String() string {
	b, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(t.fields())
	if err != nil {
		return fmt.Sprintf("Task %s <unrenderable: %v>", t.ID, err)
	}
	return fmt.Sprintf("Task %s %s", t.ID, b)
}
