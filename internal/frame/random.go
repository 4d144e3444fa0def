package frame

// Random implements the pseudo-random generator used for dithering
// chroma blocks whose AC coefficients are all zero — a Knuth
// difference-based generator over a fixed 55-entry table, kept bit-for-bit
// faithful to the reference decoder's own table and recurrence rather than
// substituted with a different PRNG, since dithering output is part of
// this decoder's observable behavior.

const (
	randomDitherFix = 8
	randomTableSize = 55
)

// Random holds the state of the pseudo-random generator.
type Random struct {
	index1, index2 int
	tab            [randomTableSize]uint32
	amp            int
}

var kRandomTable = [randomTableSize]uint32{
	0x0de15230, 0x03b31886, 0x775faccb, 0x1c88626a, 0x68385c55, 0x14b3b828,
	0x4a85fef8, 0x49ddb84b, 0x64fcf397, 0x5c550289, 0x4a290000, 0x0d7ec1da,
	0x5940b7ab, 0x5492577d, 0x4e19ca72, 0x38d38c69, 0x0c01ee65, 0x32a1755f,
	0x5437f652, 0x5abb2c32, 0x0faa57b1, 0x73f533e7, 0x685feeda, 0x7563cce2,
	0x6e990e83, 0x4730a7ed, 0x4fc0d9c6, 0x496b153c, 0x4f1403fa, 0x541afb0c,
	0x73990b32, 0x26d7cb1c, 0x6fcc3706, 0x2cbb77d8, 0x75762f2a, 0x6425ccdd,
	0x24b35461, 0x0a7d8715, 0x220414a8, 0x141ebf67, 0x56b41583, 0x73e502e3,
	0x44cab16f, 0x28264d42, 0x73baaefb, 0x0a50ebed, 0x1d6ab6fb, 0x0d3ad40b,
	0x35db3b68, 0x2b081e83, 0x77ce6b95, 0x5181e5f0, 0x78853bbc, 0x009f9494,
	0x27e5ed3c,
}

// InitRandom initializes the generator with a dithering amplitude in [0,1].
func InitRandom(rg *Random, dithering float32) {
	rg.tab = kRandomTable
	rg.index1 = 0
	rg.index2 = 31
	switch {
	case dithering < 0.0:
		rg.amp = 0
	case dithering > 1.0:
		rg.amp = 1 << randomDitherFix
	default:
		rg.amp = int(float32(1<<randomDitherFix) * dithering)
	}
}

// RandomBits2 returns a centered pseudo-random value of numBits amplitude,
// scaled by amp rather than the generator's own stored amplitude.
func RandomBits2(rg *Random, numBits, amp int) int {
	diff := int(rg.tab[rg.index1]) - int(rg.tab[rg.index2])
	if diff < 0 {
		diff += 1 << 31
	}
	rg.tab[rg.index1] = uint32(diff)
	rg.index1++
	if rg.index1 == randomTableSize {
		rg.index1 = 0
	}
	rg.index2++
	if rg.index2 == randomTableSize {
		rg.index2 = 0
	}
	diff = int(int32(uint32(diff)<<1)) >> (32 - numBits)
	diff = (diff * amp) >> randomDitherFix
	diff += 1 << (numBits - 1)
	return diff
}

// RandomBits returns a centered pseudo-random value using the generator's
// own stored amplitude.
func RandomBits(rg *Random, numBits int) int {
	return RandomBits2(rg, numBits, rg.amp)
}
