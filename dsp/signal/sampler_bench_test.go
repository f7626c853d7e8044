package signal

import "testing"

func BenchmarkSampleContinuous(b *testing.B) {
	s := NewSampler()
	sig := continuous("exp(-(t)^2/(2*0.1^2)) * sin(2*pi*50*t)", 1000, -10, 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Sample(sig, ModeAnalysis)
	}
}
