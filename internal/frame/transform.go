package frame

// Inverse transforms for VP8 lossy residual coefficients: the 4x4
// DCT-like transform, its DC-only and 3-coefficient fast paths, and the
// Walsh-Hadamard transform used to recover the sixteen luma DC
// coefficients of a macroblock coded with a separate WHT block.
//
// Constants and structure match the VP8 bitstream specification
// (RFC 6386 section 14.3-14.4) bit-for-bit; c1/c2 are the same fixed-point
// cosine/sine approximations used throughout the reference decoder.

const (
	c1 = 20091 // (sqrt(2) * cos(pi/8) - 1) * 2^16
	c2 = 35468 // sqrt(2) * sin(pi/8) * 2^16
)

// mul1 computes the MUL1 macro: ((a*c1) >> 16) + a.
func mul1(a int) int {
	return ((a * c1) >> 16) + a
}

// mul2 computes the MUL2 macro: (a*c2) >> 16.
func mul2(a int) int {
	return (a * c2) >> 16
}

// store adds v>>3 to dst[off], clips to [0,255], and writes it back.
func store(dst View, off, v int) {
	dst.Add(off, v>>3)
}

// transformOne performs a single 4x4 inverse transform: a vertical pass
// over columns followed by a horizontal pass over rows, in is 16
// coefficients in raster order, dst is positioned at the block's origin.
func transformOne(in []int16, dst View) {
	_ = in[15]

	var tmp [16]int

	for col := 0; col < 4; col++ {
		a := int(in[col]) + int(in[8+col])
		b := int(in[col]) - int(in[8+col])
		cc := mul2(int(in[4+col])) - mul1(int(in[12+col]))
		d := mul1(int(in[4+col])) + mul2(int(in[12+col]))
		tmp[col] = a + d
		tmp[4+col] = b + cc
		tmp[8+col] = b - cc
		tmp[12+col] = a - d
	}

	for row := 0; row < 4; row++ {
		base := row * 4
		dc := tmp[base+0] + 4
		a := dc + tmp[base+2]
		b := dc - tmp[base+2]
		cc := mul2(tmp[base+1]) - mul1(tmp[base+3])
		d := mul1(tmp[base+1]) + mul2(tmp[base+3])
		rowOff := row * BPS
		store(dst, rowOff+0, a+d)
		store(dst, rowOff+1, b+cc)
		store(dst, rowOff+2, b-cc)
		store(dst, rowOff+3, a-d)
	}
}

// transformTwo runs transformOne on in[0:16] at dst, and, if doTwo, also on
// in[16:32] at dst shifted 4 columns right — the common case of two
// horizontally adjacent 4x4 luma blocks sharing one coefficient scan.
func transformTwo(in []int16, dst View, doTwo bool) {
	transformOne(in, dst)
	if doTwo {
		transformOne(in[16:], dst.Offset(4))
	}
}

// transformDC applies the every-sample += dc fast path for a block whose
// only non-zero coefficient is the DC term.
func transformDC(in []int16, dst View) {
	dc := int(in[0]) + 4
	for row := 0; row < 4; row++ {
		rowOff := row * BPS
		store(dst, rowOff+0, dc)
		store(dst, rowOff+1, dc)
		store(dst, rowOff+2, dc)
		store(dst, rowOff+3, dc)
	}
}

// transformAC3 applies the fast path for a block whose only non-zero
// coefficients are positions 0, 1 and 4 in raster order.
func transformAC3(in []int16, dst View) {
	a := int(in[0]) + 4
	c4 := mul2(int(in[4]))
	d4 := mul1(int(in[4]))
	c1v := mul2(int(in[1]))
	d1v := mul1(int(in[1]))

	store(dst, 0+0*BPS, a+d4+d1v)
	store(dst, 1+0*BPS, a+d4+c1v)
	store(dst, 2+0*BPS, a+d4-c1v)
	store(dst, 3+0*BPS, a+d4-d1v)
	store(dst, 0+1*BPS, a+c4+d1v)
	store(dst, 1+1*BPS, a+c4+c1v)
	store(dst, 2+1*BPS, a+c4-c1v)
	store(dst, 3+1*BPS, a+c4-d1v)
	store(dst, 0+2*BPS, a-c4+d1v)
	store(dst, 1+2*BPS, a-c4+c1v)
	store(dst, 2+2*BPS, a-c4-c1v)
	store(dst, 3+2*BPS, a-c4-d1v)
	store(dst, 0+3*BPS, a-d4+d1v)
	store(dst, 1+3*BPS, a-d4+c1v)
	store(dst, 2+3*BPS, a-d4-c1v)
	store(dst, 3+3*BPS, a-d4-d1v)
}

// doTransform selects the inverse transform for one luma 4x4 sub-block by
// its 2-bit non-zero code in bits>>30: 0 = no residual, 1 = DC only,
// 2 = DC+first-three-AC, 3 = full 16-coefficient transform.
func doTransform(bits uint32, src []int16, dst View) {
	switch bits >> 30 {
	case 0:
		// No residual: prediction output stands unchanged.
	case 1:
		transformDC(src, dst)
	case 2:
		transformAC3(src, dst)
	default:
		transformOne(src, dst)
	}
}

// doUVTransform applies the residual to a chroma plane: if any of the
// plane's four 4x4 blocks has a non-zero code, then either (some block has
// AC coefficients) run the full transform on all four blocks, or run the
// DC-only transform on each block whose 2-bit code is non-zero.
func doUVTransform(bits uint32, src []int16, dst View) {
	if bits&0xff == 0 {
		return
	}
	if bits&0xaa != 0 {
		// At least one block has AC coefficients: run the full transform
		// on all four blocks.
		transformTwo(src, dst, true)
		transformTwo(src[32:], dst.Offset(4*BPS), true)
		return
	}
	// DC-only for every coded block.
	if bits&0x03 != 0 {
		transformDC(src, dst)
	}
	if bits&0x0c != 0 {
		transformDC(src[16:], dst.Offset(4))
	}
	if bits&0x30 != 0 {
		transformDC(src[32:], dst.Offset(4*BPS))
	}
	if bits&0xc0 != 0 {
		transformDC(src[48:], dst.Offset(4*BPS+4))
	}
}

// TransformWHT performs the inverse Walsh-Hadamard transform on the
// sixteen luma DC coefficients of a macroblock, writing each result into
// the DC slot (position 0) of the corresponding 4x4 coefficient block in
// out — stride 16 between consecutive blocks — ready to feed transformDC
// or doTransform for that sub-block.
func TransformWHT(in []int16, out []int16) {
	var tmp [16]int

	for i := 0; i < 4; i++ {
		a0 := int(in[0+i]) + int(in[12+i])
		a1 := int(in[4+i]) + int(in[8+i])
		a2 := int(in[4+i]) - int(in[8+i])
		a3 := int(in[0+i]) - int(in[12+i])
		tmp[0+i] = a0 + a1
		tmp[8+i] = a0 - a1
		tmp[4+i] = a3 + a2
		tmp[12+i] = a3 - a2
	}

	for i := 0; i < 4; i++ {
		dc := tmp[i*4+0] + 3
		a0 := dc + tmp[i*4+3]
		a1 := tmp[i*4+1] + tmp[i*4+2]
		a2 := tmp[i*4+1] - tmp[i*4+2]
		a3 := dc - tmp[i*4+3]
		base := i * 4 * 16
		out[base+0*16] = int16((a0 + a1) >> 3)
		out[base+1*16] = int16((a3 + a2) >> 3)
		out[base+2*16] = int16((a0 - a1) >> 3)
		out[base+3*16] = int16((a3 - a2) >> 3)
	}
}
