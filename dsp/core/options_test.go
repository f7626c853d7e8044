package core

import "testing"

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithEpsilon(0.5),
		WithEnergyCeiling(10),
		WithMaxDisplayPoints(64),
		WithMaxDiscreteDisplayPoints(8),
		WithMinStep(0.25),
		WithMaxAnalysisPoints(4096),
		WithDirectDFTLimit(0),
	)
	if cfg.Epsilon != 0.5 {
		t.Fatalf("epsilon = %v, want 0.5", cfg.Epsilon)
	}
	if cfg.EnergyCeiling != 10 {
		t.Fatalf("ceiling = %v, want 10", cfg.EnergyCeiling)
	}
	if cfg.MaxDisplayPoints != 64 {
		t.Fatalf("max display = %d, want 64", cfg.MaxDisplayPoints)
	}
	if cfg.MaxDiscreteDisplayPoints != 8 {
		t.Fatalf("max discrete display = %d, want 8", cfg.MaxDiscreteDisplayPoints)
	}
	if cfg.MinStep != 0.25 {
		t.Fatalf("min step = %v, want 0.25", cfg.MinStep)
	}
	if cfg.MaxAnalysisPoints != 4096 {
		t.Fatalf("max analysis = %d, want 4096", cfg.MaxAnalysisPoints)
	}
	if cfg.DirectDFTLimit != 0 {
		t.Fatalf("direct limit = %d, want 0", cfg.DirectDFTLimit)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyOptions(
		WithEpsilon(0),
		WithEnergyCeiling(-1),
		WithMaxDisplayPoints(0),
		WithMaxDiscreteDisplayPoints(-3),
		WithMinStep(0),
		WithMaxAnalysisPoints(0),
		WithDirectDFTLimit(-1),
		nil,
	)
	def := DefaultConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
