package frame

// MB carries the non-zero-coefficient context a macroblock leaves behind
// for its right and bottom neighbors during entropy decoding.
type MB struct {
	Nz   uint8 // non-zero AC/DC coeffs: 4-bit luma + 2x2-bit chroma
	NzDC uint8 // non-zero 16x16-luma DC coefficient, one bit
}

// MBData holds everything the reconstruction core needs for one
// macroblock: its dequantized residual coefficients and the prediction
// modes chosen for it. Coeffs is laid out as 24 consecutive 4x4 blocks of
// 16 coefficients each: 16 luma, 4 U, 4 V. There is no slot for the
// separate luma DC (WHT) block; its inverse transform is written into the
// DC position of each luma block.
type MBData struct {
	Coeffs    [384]int16
	IsI4x4    bool
	IModes    [16]uint8 // one 16x16 mode, or sixteen 4x4 modes
	UVMode    uint8
	NonZeroY  uint32
	NonZeroUV uint32
	Dither    uint8
	Skip      bool
	Segment   uint8
}

// TopSamples holds the bottom row of reconstructed samples from a
// macroblock, kept so the macroblock below it has a top-context row to
// predict from without re-reading the output cache.
type TopSamples struct {
	Y [16]uint8
	U [8]uint8
	V [8]uint8
}

// kScan gives the byte offset, within the scratch buffer's luma plane, of
// each of a macroblock's sixteen 4x4 sub-blocks in raster order.
var kScan = [16]int{
	0 + 0*BPS, 4 + 0*BPS, 8 + 0*BPS, 12 + 0*BPS,
	0 + 4*BPS, 4 + 4*BPS, 8 + 4*BPS, 12 + 4*BPS,
	0 + 8*BPS, 4 + 8*BPS, 8 + 8*BPS, 12 + 8*BPS,
	0 + 12*BPS, 4 + 12*BPS, 8 + 12*BPS, 12 + 12*BPS,
}
