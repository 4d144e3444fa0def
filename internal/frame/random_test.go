package frame

import "testing"

func TestRandomInit(t *testing.T) {
	var rg Random
	InitRandom(&rg, 1.0)

	if rg.index1 != 0 {
		t.Errorf("index1 = %d, want 0", rg.index1)
	}
	if rg.index2 != 31 {
		t.Errorf("index2 = %d, want 31", rg.index2)
	}
	if rg.amp != 1<<randomDitherFix {
		t.Errorf("amp = %d, want %d", rg.amp, 1<<randomDitherFix)
	}

	for i := 0; i < randomTableSize; i++ {
		if rg.tab[i] != kRandomTable[i] {
			t.Errorf("tab[%d] = %d, want %d", i, rg.tab[i], kRandomTable[i])
		}
	}
}

func TestRandomInitClamp(t *testing.T) {
	tests := []struct {
		name      string
		dithering float32
		wantAmp   int
	}{
		{"zero", 0.0, 0},
		{"negative", -1.0, 0},
		{"half", 0.5, 128},
		{"one", 1.0, 256},
		{"over", 2.0, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rg Random
			InitRandom(&rg, tt.dithering)
			if rg.amp != tt.wantAmp {
				t.Errorf("amp = %d, want %d", rg.amp, tt.wantAmp)
			}
		})
	}
}

func TestRandomBitsCentered(t *testing.T) {
	var rg Random
	InitRandom(&rg, 1.0)

	numBits := 16
	center := 1 << (numBits - 1)

	const n = 10000
	sum := 0
	min, max := center*2, 0
	for i := 0; i < n; i++ {
		v := RandomBits(&rg, numBits)
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := float64(sum) / float64(n)

	if avg < float64(center)*0.90 || avg > float64(center)*1.10 {
		t.Errorf("average = %.1f, expected near %d", avg, center)
	}
	if min >= center || max <= center {
		t.Errorf("expected spread around center: min=%d, max=%d, center=%d", min, max, center)
	}
}

func TestRandomBitsZeroAmp(t *testing.T) {
	var rg Random
	InitRandom(&rg, 0.0)

	numBits := 16
	center := 1 << (numBits - 1)
	for i := 0; i < 100; i++ {
		v := RandomBits(&rg, numBits)
		if v != center {
			t.Fatalf("iteration %d: got %d, want %d", i, v, center)
		}
	}
}

func TestRandomBitsDeterministic(t *testing.T) {
	var rg1, rg2 Random
	InitRandom(&rg1, 0.75)
	InitRandom(&rg2, 0.75)

	for i := 0; i < 200; i++ {
		v1 := RandomBits(&rg1, 16)
		v2 := RandomBits(&rg2, 16)
		if v1 != v2 {
			t.Fatalf("iteration %d: rg1=%d, rg2=%d (should be identical)", i, v1, v2)
		}
	}
}

func TestRandomBitsWraparound(t *testing.T) {
	var rg Random
	InitRandom(&rg, 1.0)

	for i := 0; i < 200; i++ {
		_ = RandomBits(&rg, 16)
	}
}
