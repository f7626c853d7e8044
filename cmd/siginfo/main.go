// Command siginfo analyses signals stored in a collection file.
//
// Usage:
//
//	siginfo [flags] [signal-id-or-name ...]
//
// Without arguments it prints properties for every signal in the file.
//
// Examples:
//
//	siginfo -file signals.json
//	siginfo -file signals.json -spectrum sine
//	siginfo -expr "sin(2*pi*5*t)" -rate 100 -start 0 -end 2 -spectrum -window hann
//	siginfo -file signals.json -combine add:sine:cosine -out combined.json
//	siginfo -file signals.json -transform shift:sine:0.5 -samples 5
//	siginfo -file signals.json -convolve sine:cosine
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-signals/collection"
	"github.com/cwbudde/algo-signals/dsp/compose"
	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/signal"
	"github.com/cwbudde/algo-signals/dsp/spectrum"
	"github.com/cwbudde/algo-signals/dsp/window"
	"github.com/cwbudde/algo-signals/internal/logging"
	"github.com/cwbudde/algo-signals/measure/analysis"
	"github.com/cwbudde/algo-signals/stats/frequency"
	sigtime "github.com/cwbudde/algo-signals/stats/time"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	file      string
	out       string
	expr      string
	typ       string
	rate      float64
	start     float64
	end       float64
	spectrum  bool
	window    string
	probe     float64
	samples   int
	combine   string
	transform string
	convolve  string
	correlate string
	list      bool
	epsilon   float64
	logLevel  string
	dev       bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("siginfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.file, "file", "", "collection file (JSON array of signals)")
	fs.StringVar(&o.out, "out", "", "write the resulting collection to this file")
	fs.StringVar(&o.expr, "expr", "", "ad-hoc signal expression in t, added to the collection")
	fs.StringVar(&o.typ, "type", string(signal.Continuous), "ad-hoc signal type (continuous|discrete)")
	fs.Float64Var(&o.rate, "rate", 1000, "ad-hoc signal sampling rate in Hz")
	fs.Float64Var(&o.start, "start", -10, "ad-hoc signal start time")
	fs.Float64Var(&o.end, "end", 10, "ad-hoc signal end time")
	fs.BoolVar(&o.spectrum, "spectrum", false, "print the dominant frequency of each signal")
	fs.StringVar(&o.window, "window", "rectangular", "spectrum window (rectangular|hann|hamming|blackman|flattop)")
	fs.Float64Var(&o.probe, "probe", -1, "print the normalized magnitude at this frequency (Hz)")
	fs.IntVar(&o.samples, "samples", 0, "print the first N display samples of each signal")
	fs.StringVar(&o.combine, "combine", "", "op:idA:idB, add the combined signal (add|subtract|multiply|divide)")
	fs.StringVar(&o.transform, "transform", "", "kind:id:factor, add the transformed signal")
	fs.StringVar(&o.convolve, "convolve", "", "idA:idB, print the sampled convolution summary")
	fs.StringVar(&o.correlate, "correlate", "", "idA:idB, print the sampled cross-correlation peak lag")
	fs.BoolVar(&o.list, "list", false, "list signal ids and names")
	fs.Float64Var(&o.epsilon, "epsilon", core.DefaultEpsilon, "periodicity and symmetry tolerance")
	fs.StringVar(&o.logLevel, "log", "warn", "log level (debug|info|warn|error)")
	fs.BoolVar(&o.dev, "dev", false, "human-readable development logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: siginfo [flags] [signal-id-or-name ...]\n\n")
		fmt.Fprintf(stderr, "Prints analysis properties of signals from a collection file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, names, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := logging.New(o.logLevel, o.dev)
	if err != nil {
		fmt.Fprintf(stderr, "error: logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	coll := collection.New(
		collection.WithLogger(logger),
		collection.WithNotifier(func(s collection.Status) { fmt.Fprintln(stderr, s) }),
	)
	if err := populate(coll, o); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if o.list {
		for _, s := range coll.Signals() {
			fmt.Fprintf(stdout, "%s\t%s\n", s.ID, s.Name)
		}
		return 0
	}

	sampler := signal.NewSamplerWithOptions(
		[]core.Option{core.WithEpsilon(o.epsilon)},
		signal.WithLogger(logger),
	)
	if err := derive(coll, sampler, o, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	selected, err := resolve(coll, names)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if len(selected) == 0 {
		fmt.Fprintf(stderr, "error: no signals (use -file or -expr)\n")
		return 1
	}

	if err := printAnalysis(stdout, sampler, selected, o); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if o.samples > 0 {
		printSamples(stdout, sampler, selected, o.samples)
	}

	if o.out != "" {
		if err := coll.SaveTo(o.out); err != nil {
			return 1
		}
	}
	logger.Debug("done", zap.Int("signals", len(selected)))
	return 0
}

func populate(coll *collection.Collection, o options) error {
	if o.file != "" {
		if err := coll.LoadFrom(o.file); err != nil {
			return err
		}
	}
	if o.expr != "" {
		typ, err := signal.ParseType(o.typ)
		if err != nil {
			return err
		}
		if err := coll.Add(signal.New(o.expr, o.expr, typ, o.rate, o.start, o.end)); err != nil {
			return err
		}
	}
	return nil
}

// derive applies -combine, -transform, -convolve and -correlate.
func derive(coll *collection.Collection, sampler *signal.Sampler, o options, stdout io.Writer) error {
	if o.combine != "" {
		parts, err := splitSpec(o.combine, 3, "-combine")
		if err != nil {
			return err
		}
		op, err := compose.ParseOperation(parts[0])
		if err != nil {
			return err
		}
		a, b, err := pair(coll, parts[1], parts[2])
		if err != nil {
			return err
		}
		c, err := compose.Combine(a, b, op)
		if err != nil {
			return err
		}
		if err := coll.Add(c); err != nil {
			return err
		}
	}

	if o.transform != "" {
		parts, err := splitSpec(o.transform, 3, "-transform")
		if err != nil {
			return err
		}
		kind, err := compose.ParseTransformation(parts[0])
		if err != nil {
			return err
		}
		sig, err := find(coll, parts[1])
		if err != nil {
			return err
		}
		factor, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return fmt.Errorf("-transform factor %q: %w", parts[2], err)
		}
		if err := compose.ValidateFactor(kind, factor); err != nil {
			return err
		}
		out, err := compose.Transform(sig, kind, factor)
		if err != nil {
			return err
		}
		if err := coll.Add(out); err != nil {
			return err
		}
	}

	eng := compose.NewEngine(sampler)
	for _, job := range []struct {
		spec string
		op   compose.Operation
	}{{o.convolve, compose.Convolve}, {o.correlate, compose.Correlate}} {
		if job.spec == "" {
			continue
		}
		parts, err := splitSpec(job.spec, 2, "-"+string(job.op))
		if err != nil {
			return err
		}
		a, b, err := pair(coll, parts[0], parts[1])
		if err != nil {
			return err
		}
		apply := eng.Convolve
		if job.op == compose.Correlate {
			apply = eng.Correlate
		}
		seq, err := apply(a, b)
		if err != nil {
			return err
		}
		printSequenceSummary(stdout, fmt.Sprintf("%s %s %s", a.Name, job.op.Symbol(), b.Name), seq)
	}
	return nil
}

func splitSpec(spec string, n int, flagName string) ([]string, error) {
	parts := strings.SplitN(spec, ":", n)
	if len(parts) != n {
		return nil, fmt.Errorf("%s %q: want %d colon-separated fields", flagName, spec, n)
	}
	return parts, nil
}

func pair(coll *collection.Collection, a, b string) (signal.Signal, signal.Signal, error) {
	sa, err := find(coll, a)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}
	sb, err := find(coll, b)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}
	return sa, sb, nil
}

// find looks a signal up by ID, then by exact name.
func find(coll *collection.Collection, key string) (signal.Signal, error) {
	if s, err := coll.Get(key); err == nil {
		return s, nil
	}
	for _, s := range coll.Signals() {
		if s.Name == key {
			return s, nil
		}
	}
	return signal.Signal{}, fmt.Errorf("%w: %q", collection.ErrNotFound, key)
}

func resolve(coll *collection.Collection, names []string) ([]signal.Signal, error) {
	if len(names) == 0 {
		return coll.Signals(), nil
	}
	out := make([]signal.Signal, 0, len(names))
	for _, n := range names {
		s, err := find(coll, n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func printAnalysis(w io.Writer, sampler *signal.Sampler, signals []signal.Signal, o options) error {
	win, err := window.ParseType(o.window)
	if err != nil {
		return err
	}
	engine := spectrum.NewEngine(sampler, spectrum.WithWindow(win))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Signal\tType\tSamples\tEnergy\tPower\tClass\tPeriodic\tEven\tOdd\tRMS\tZero X"
	rule := "------\t----\t-------\t------\t-----\t-----\t--------\t----\t---\t---\t------"
	if o.spectrum {
		header += "\tPeak [Hz]\tPeak [dB]\tPhase [rad]\tCentroid [Hz]\tBackend"
		rule += "\t---------\t---------\t-----------\t-------------\t-------"
	}
	if o.probe >= 0 {
		header += fmt.Sprintf("\t|X(%g Hz)|", o.probe)
		rule += "\t--------"
	}
	fmt.Fprintln(tw, header)
	fmt.Fprintln(tw, rule)

	for _, sig := range signals {
		seq := sampler.Sample(sig, signal.ModeAnalysis)
		p := analysis.AnalyzeSequence(seq, sampler.Config())
		st := sigtime.Calculate(seq.Values)

		row := fmt.Sprintf("%s\t%s\t%d\t%.6g\t%.6g\t%s\t%t\t%t\t%t\t%.4g\t%d",
			sig.Name, sig.Type, p.Samples, p.Energy, p.Power, p.Class,
			p.IsPeriodic, p.IsEven, p.IsOdd, st.RMS, st.ZeroCrossings)

		if o.spectrum {
			s, err := engine.Compute(sig)
			if err != nil {
				return err
			}
			if k, ok := s.PeakIndex(0); ok {
				d := frequency.Describe(s)
				row += fmt.Sprintf("\t%.4g\t%.1f\t%.3f\t%.4g\t%s", s.Frequencies[k],
					core.LinearToDB(s.Magnitudes[k]), s.Phases[k], d.Centroid, s.Backend)
			} else {
				row += "\t-\t-\t-\t-\t-"
			}
		}
		if o.probe >= 0 {
			m, err := engine.Probe(sig, o.probe)
			if err != nil {
				row += "\t-"
			} else {
				row += fmt.Sprintf("\t%.4g", m)
			}
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

func printSamples(w io.Writer, sampler *signal.Sampler, signals []signal.Signal, n int) {
	for _, sig := range signals {
		seq := sampler.Sample(sig, signal.ModeDisplay)
		fmt.Fprintf(w, "\n%s:\n", sig.Name)
		for i := 0; i < seq.Len() && i < n; i++ {
			fmt.Fprintf(w, "  t=%-10.4g %.6g\n", seq.Positions[i], seq.Values[i])
		}
		if len(seq.Faults) > 0 {
			fmt.Fprintf(w, "  (%d samples failed to evaluate: %v)\n", len(seq.Faults), seq.Err())
		}
	}
}

func printSequenceSummary(w io.Writer, label string, seq signal.Sequence) {
	if seq.Empty() {
		fmt.Fprintf(w, "%s: empty\n", label)
		return
	}
	st := sigtime.Calculate(seq.Values)
	fmt.Fprintf(w, "%s: %d samples on [%.4g, %.4g], peak %.6g at t=%.4g\n",
		label, seq.Len(), seq.Start, seq.End, st.Max, seq.Positions[st.MaxPos])
}
