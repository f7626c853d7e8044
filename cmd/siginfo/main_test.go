package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-signals/collection"
	"github.com/cwbudde/algo-signals/internal/testutil"
)

func writeLibrary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signals.json")
	if err := collection.SaveFile(path, testutil.Library()); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	return path
}

func TestRunAnalysisTable(t *testing.T) {
	path := writeLibrary(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"-file", path, "-spectrum", "-window", "hann", "sine", "ramp"}, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut.String())
	}
	got := out.String()
	for _, want := range []string{"Signal", "Peak [Hz]", "Phase [rad]", "Centroid [Hz]", "sine", "ramp", "continuous", "discrete"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "cosine") {
		t.Errorf("unselected signal printed:\n%s", got)
	}
	if !strings.Contains(errOut.String(), "5 signals loaded") {
		t.Errorf("stderr missing load status: %q", errOut.String())
	}
}

func TestRunList(t *testing.T) {
	path := writeLibrary(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"-file", path, "-list"}, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 5 {
		t.Fatalf("listed %d signals, want 5:\n%s", lines, out.String())
	}
}

func TestRunCombineAndSave(t *testing.T) {
	path := writeLibrary(t)
	dst := filepath.Join(t.TempDir(), "out.json")
	var out, errOut bytes.Buffer
	args := []string{"-file", path, "-combine", "add:sine:cosine", "-transform", "amplify:sine:2", "-out", dst}
	if code := run(args, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut.String())
	}
	saved, err := collection.LoadFile(dst)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(saved) != 7 {
		t.Fatalf("saved %d signals, want 7", len(saved))
	}
	if saved[5].Name != "sine + cosine" {
		t.Errorf("combined name = %q", saved[5].Name)
	}
	if saved[6].Expression != "2 * (sin(2*pi*t))" {
		t.Errorf("amplified expression = %q", saved[6].Expression)
	}
}

func TestRunExpressionWithSamples(t *testing.T) {
	var out, errOut bytes.Buffer
	args := []string{"-expr", "t", "-type", "discrete", "-rate", "1", "-start", "0", "-end", "2", "-samples", "2"}
	if code := run(args, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "t=0 ") || !strings.Contains(out.String(), "t=1 ") {
		t.Errorf("samples missing:\n%s", out.String())
	}
	if strings.Contains(out.String(), "t=2 ") {
		t.Errorf("printed more than 2 samples:\n%s", out.String())
	}
}

func TestRunConvolve(t *testing.T) {
	path := writeLibrary(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"-file", path, "-convolve", "ramp:ramp", "ramp"}, &out, &errOut); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "ramp convolved with ramp: 41 samples") {
		t.Errorf("convolution summary missing:\n%s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	path := writeLibrary(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no signals", nil},
		{"missing file", []string{"-file", filepath.Join(t.TempDir(), "nope.json")}},
		{"unknown signal", []string{"-file", path, "nope"}},
		{"bad op", []string{"-file", path, "-combine", "pow:sine:cosine"}},
		{"formula-less op", []string{"-file", path, "-combine", "convolve:sine:cosine"}},
		{"bad factor", []string{"-file", path, "-transform", "expand:sine:0"}},
		{"short spec", []string{"-file", path, "-correlate", "sine"}},
		{"bad type", []string{"-expr", "t", "-type", "analog"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := run(tt.args, &out, &errOut); code != 1 {
				t.Fatalf("exit code %d, want 1", code)
			}
			if !strings.Contains(errOut.String(), "error") {
				t.Errorf("stderr = %q", errOut.String())
			}
		})
	}
}
