package signal

import (
	"errors"
	"math"
	"testing"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New("a", "t", Continuous, 10, 0, 1)
	b := New("b", "t", Continuous, 10, 0, 1)
	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty ids")
	}
	if a.ID == b.ID {
		t.Fatalf("ids collide: %s", a.ID)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New("d", "t", Discrete, 1, 0, 3).WithPoints(0, 1, 2)
	c := s.Clone()
	c.Points[0] = 42
	if s.Points[0] != 0 {
		t.Fatalf("clone shares points: %v", s.Points)
	}
}

func TestParseType(t *testing.T) {
	if typ, err := ParseType("discrete"); err != nil || typ != Discrete {
		t.Fatalf("ParseType(discrete) = %v, %v", typ, err)
	}
	if _, err := ParseType("analog"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestValidate(t *testing.T) {
	valid := New("ok", "sin(t)", Continuous, 100, -1, 1)
	tests := []struct {
		name   string
		mutate func(*Signal)
		want   error
	}{
		{name: "valid", mutate: func(*Signal) {}},
		{name: "inverted range is valid", mutate: func(s *Signal) { s.StartTime, s.EndTime = 1, -1 }},
		{name: "missing id", mutate: func(s *Signal) { s.ID = "" }, want: ErrMissingID},
		{name: "bad type", mutate: func(s *Signal) { s.Type = "analog" }, want: ErrInvalidType},
		{name: "zero rate", mutate: func(s *Signal) { s.SamplingRate = 0 }, want: ErrInvalidRate},
		{name: "nan rate", mutate: func(s *Signal) { s.SamplingRate = math.NaN() }, want: ErrInvalidRate},
		{name: "infinite end", mutate: func(s *Signal) { s.EndTime = math.Inf(1) }, want: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid.Clone()
			tt.mutate(&s)
			err := s.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
