package spectrum

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-signals/internal/testutil"
)

func BenchmarkTransform(b *testing.B) {
	for _, n := range []int{512, 4096, 6000} {
		x := testutil.DeterministicNoise(1, 1, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := Transform(x, 1024); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
