package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-signals/dsp/core"
)

// minBlockSize bounds the overlap-add segment length from below.
const minBlockSize = 256

// OverlapAdd convolves long inputs with a fixed kernel by FFT blocks: each
// input block is zero-padded, multiplied with the kernel spectrum and the
// block results are summed at their offsets.
type OverlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int
	plan      *algofft.Plan[complex128]
	scratch   []complex128
}

// NewOverlapAdd creates a convolver for kernel. A blockSize <= 0 picks the
// next power of two at or above the kernel length, at least 256.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		blockSize = max(core.NextPowerOfTwo(len(kernel)), minBlockSize)
	}

	fftSize := core.NextPowerOfTwo(blockSize + len(kernel) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: fft plan of size %d: %w", fftSize, err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
	}
	for i, v := range kernel {
		oa.scratch[i] = complex(v, 0)
	}
	if err := plan.Forward(oa.kernelFFT, oa.scratch); err != nil {
		return nil, fmt.Errorf("conv: kernel fft: %w", err)
	}
	return oa, nil
}

// BlockSize returns the input segment length.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the transform length.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// Process returns the full linear convolution of input with the kernel.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]float64, len(input)+oa.kernelLen-1)
	buf := oa.scratch

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		clear(buf)
		for i, v := range input[start:end] {
			buf[i] = complex(v, 0)
		}
		if err := oa.plan.Forward(buf, buf); err != nil {
			return nil, fmt.Errorf("conv: forward fft: %w", err)
		}
		for i := range buf {
			buf[i] *= oa.kernelFFT[i]
		}
		if err := oa.plan.Inverse(buf, buf); err != nil {
			return nil, fmt.Errorf("conv: inverse fft: %w", err)
		}

		n := min(end-start+oa.kernelLen-1, len(output)-start)
		for i := 0; i < n; i++ {
			output[start+i] += real(buf[i])
		}
	}
	return output, nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution of signal
// with kernel.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}
	return oa.Process(signal)
}
