package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Type distinguishes continuous from discrete signals.
type Type string

const (
	Continuous Type = "continuous"
	Discrete   Type = "discrete"
)

// Valid reports whether t is a known signal type.
func (t Type) Valid() bool {
	return t == Continuous || t == Discrete
}

// ParseType converts a type name to a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("signal: unknown type %q", s)
	}
	return t, nil
}

// Errors returned by Validate.
var (
	ErrMissingID    = errors.New("signal: missing id")
	ErrInvalidType  = errors.New("signal: invalid type")
	ErrInvalidRate  = errors.New("signal: sampling rate must be > 0")
	ErrInvalidRange = errors.New("signal: start and end time must be finite")
)

// Signal is a formula in t together with the domain it is sampled on.
type Signal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Expression   string    `json:"expression"`
	Type         Type      `json:"type"`
	Points       []float64 `json:"points,omitempty"`
	SamplingRate float64   `json:"samplingRate"`
	StartTime    float64   `json:"startTime"`
	EndTime      float64   `json:"endTime"`
}

// New creates a signal with a fresh random identifier.
func New(name, expression string, typ Type, samplingRate, start, end float64) Signal {
	return Signal{
		ID:           NewID(),
		Name:         name,
		Expression:   expression,
		Type:         typ,
		SamplingRate: samplingRate,
		StartTime:    start,
		EndTime:      end,
	}
}

// NewID returns a new unique signal identifier.
func NewID() string {
	return uuid.NewString()
}

// WithPoints returns a copy of s using the given explicit sample positions.
func (s Signal) WithPoints(points ...float64) Signal {
	out := s.Clone()
	out.Points = append([]float64(nil), points...)
	return out
}

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	out := s
	if s.Points != nil {
		out.Points = append([]float64(nil), s.Points...)
	}
	return out
}

// Duration returns EndTime - StartTime. It may be negative for an inverted
// range.
func (s Signal) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Validate checks the fields a stored record must carry meaningfully. An
// inverted time range is valid and samples to an empty sequence.
func (s Signal) Validate() error {
	if s.ID == "" {
		return ErrMissingID
	}
	if !s.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, s.Type)
	}
	if !(s.SamplingRate > 0) || math.IsInf(s.SamplingRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, s.SamplingRate)
	}
	if math.IsNaN(s.StartTime) || math.IsInf(s.StartTime, 0) ||
		math.IsNaN(s.EndTime) || math.IsInf(s.EndTime, 0) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, s.StartTime, s.EndTime)
	}
	return nil
}
