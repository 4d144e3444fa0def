package webp

import (
	"bytes"
	"testing"
)

// Benchmarking a full pixel decode needs a real entropy-coded VP8 bitstream;
// this repo has no encoder to produce one and no bundled fixture file, so
// these benchmarks cover the two operations that only need a valid container
// header: GetFeatures and DecodeConfig.

func BenchmarkGetFeatures_Lossy(b *testing.B) {
	data := buildSimpleVP8WebP(640, 480)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GetFeatures(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetFeatures_VP8X(b *testing.B) {
	data := buildAnimatedVP8XWebP(640, 480)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GetFeatures(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeConfig_Lossy(b *testing.B) {
	data := buildSimpleVP8WebP(640, 480)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeConfig(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
