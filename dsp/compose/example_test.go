package compose_test

import (
	"fmt"

	"github.com/cwbudde/algo-signals/dsp/compose"
	"github.com/cwbudde/algo-signals/dsp/signal"
)

func ExampleCombine() {
	a := signal.New("sine", "sin(2*pi*t)", signal.Continuous, 100, 0, 1)
	b := signal.New("ramp", "t", signal.Discrete, 10, -1, 2)
	c, _ := compose.Combine(a, b, compose.Multiply)
	fmt.Println(c.Name)
	fmt.Println(c.Expression)
	fmt.Println(c.Type, c.SamplingRate, c.StartTime, c.EndTime)

	// Output:
	// sine * ramp
	// (sin(2*pi*t)) * (t)
	// continuous 100 -1 2
}

func ExampleTransform() {
	sig := signal.New("pulse", "t >= 0 ? exp(-t) : 0", signal.Continuous, 100, 0, 5)
	shifted, _ := compose.Transform(sig, compose.Shift, 2)
	fmt.Println(shifted.Name)
	fmt.Println(shifted.Expression)

	// Output:
	// pulse (Shifted by 2s)
	// t - 2 >= 0 ? exp(-(t - 2)) : 0
}

func ExampleConvolveSignals() {
	ones := signal.New("ones", "1", signal.Discrete, 1, 0, 2)
	seq, _ := compose.ConvolveSignals(ones, ones)
	fmt.Println(seq.Positions, seq.Values)

	// Output:
	// [0 1 2 3 4] [1 2 3 2 1]
}
