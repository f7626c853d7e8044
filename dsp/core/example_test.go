package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-signals/dsp/core"
)

func ExampleApplyOptions() {
	cfg := core.ApplyOptions(
		core.WithEpsilon(0.001),
		core.WithMaxDisplayPoints(500),
	)

	fmt.Printf("eps=%g display=%d ceiling=%g\n", cfg.Epsilon, cfg.MaxDisplayPoints, cfg.EnergyCeiling)

	// Output:
	// eps=0.001 display=500 ceiling=1e+06
}
