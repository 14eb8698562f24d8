package transform

import (
	"errors"
	"fmt"
)

var (
	ErrSelfLoop   = errors.New("transform: source and target frame are equal")
	ErrEmptyFrame = errors.New("transform: empty frame name")
)

// Transformation is a directed mapping capability between two frames.
type Transformation struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

func New(source, target string) Transformation {
	return Transformation{Source: source, Target: target}
}

func (t Transformation) Validate() error {
	if t.Source == "" || t.Target == "" {
		return fmt.Errorf("%w in %q", ErrEmptyFrame, t.String())
	}
	if t.Source == t.Target {
		return fmt.Errorf("%w: %q", ErrSelfLoop, t.Source)
	}
	return nil
}

func (t Transformation) Equal(o Transformation) bool {
	return t.Source == o.Source && t.Target == o.Target
}

func (t Transformation) String() string { return t.Source + "2" + t.Target }
