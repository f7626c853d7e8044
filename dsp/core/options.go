package core

// Config holds the thresholds and point budgets shared by sampling, analysis
// and spectrum computation.
type Config struct {
	// Epsilon is the absolute tolerance for periodicity and symmetry checks.
	Epsilon float64
	// EnergyCeiling is the exclusive upper bound for energy/power classification.
	EnergyCeiling float64
	// MaxDisplayPoints caps continuous grids and explicit point lists in display mode.
	MaxDisplayPoints int
	// MaxDiscreteDisplayPoints caps generated discrete positions in display mode.
	MaxDiscreteDisplayPoints int
	// MinStep is the smallest step used when generating discrete positions.
	MinStep float64
	// MaxAnalysisPoints bounds every generated grid. Larger grids sample as empty.
	MaxAnalysisPoints int
	// DirectDFTLimit is the largest sample count transformed by direct summation.
	DirectDFTLimit int
}

// Option mutates a Config.
type Option func(*Config)

const (
	DefaultEpsilon                  = 0.01
	DefaultEnergyCeiling            = 1e6
	DefaultMaxDisplayPoints         = 10000
	DefaultMaxDiscreteDisplayPoints = 100
	DefaultMinStep                  = 0.001
	DefaultMaxAnalysisPoints        = 1 << 24
	DefaultDirectDFTLimit           = 1024
)

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Epsilon:                  DefaultEpsilon,
		EnergyCeiling:            DefaultEnergyCeiling,
		MaxDisplayPoints:         DefaultMaxDisplayPoints,
		MaxDiscreteDisplayPoints: DefaultMaxDiscreteDisplayPoints,
		MinStep:                  DefaultMinStep,
		MaxAnalysisPoints:        DefaultMaxAnalysisPoints,
		DirectDFTLimit:           DefaultDirectDFTLimit,
	}
}

// WithEpsilon sets the periodicity/symmetry tolerance.
func WithEpsilon(eps float64) Option {
	return func(cfg *Config) {
		if eps > 0 && IsFinite(eps) {
			cfg.Epsilon = eps
		}
	}
}

// WithEnergyCeiling sets the classification ceiling.
func WithEnergyCeiling(ceiling float64) Option {
	return func(cfg *Config) {
		if ceiling > 0 && IsFinite(ceiling) {
			cfg.EnergyCeiling = ceiling
		}
	}
}

// WithMaxDisplayPoints sets the display budget for continuous grids and
// explicit point lists.
func WithMaxDisplayPoints(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxDisplayPoints = n
		}
	}
}

// WithMaxDiscreteDisplayPoints sets the display budget for generated discrete
// positions.
func WithMaxDiscreteDisplayPoints(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxDiscreteDisplayPoints = n
		}
	}
}

// WithMinStep sets the minimum discrete generation step.
func WithMinStep(step float64) Option {
	return func(cfg *Config) {
		if step > 0 && IsFinite(step) {
			cfg.MinStep = step
		}
	}
}

// WithMaxAnalysisPoints sets the largest grid the sampler will allocate.
func WithMaxAnalysisPoints(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxAnalysisPoints = n
		}
	}
}

// WithDirectDFTLimit sets the largest size handled by the direct transform.
// A limit of 0 is valid and routes every non-empty input to a fast transform.
func WithDirectDFTLimit(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.DirectDFTLimit = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
