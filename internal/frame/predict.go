package frame

// Intra prediction for VP8 lossy macroblocks: ten 4x4 luma modes, four
// 16x16 luma modes, and four 8x8 chroma modes, each with DC corner
// variants selected by macroblock position. Every predictor writes into a
// View positioned at the block's top-left sample; reference pixels are
// read through the same View at negative offsets (top row at -BPS, left
// column at -1, top-left corner at -BPS-1).
//
// Modes are closed Go types switched in one function per block size,
// rather than the function-pointer tables the reference decoder installs
// at startup: there is exactly one implementation of each mode (no SIMD
// variant selection in this scalar decoder), so a switch is both the
// simplest and the most auditable dispatch.

// Luma4Mode names one of the ten 4x4 luma intra prediction modes.
type Luma4Mode uint8

const (
	Luma4DC Luma4Mode = iota
	Luma4TM
	Luma4VE
	Luma4HE
	Luma4RD
	Luma4VR
	Luma4LD
	Luma4VL
	Luma4HD
	Luma4HU
)

// Block16Mode names one of the four 16x16 luma (or, reused, 8x8 chroma)
// base intra prediction modes, plus the three DC corner variants selected
// by CheckMode when the macroblock is on the image's top row and/or left
// column.
type Block16Mode uint8

const (
	PredDC Block16Mode = iota
	PredTM
	PredVE
	PredHE
	PredDCNoTop
	PredDCNoLeft
	PredDCNoTopLeft
)

// CheckMode resolves the bitstream-coded prediction mode for a 16x16 luma
// or 8x8 chroma block into the concrete corner variant to run, given the
// macroblock's position. Mode 0 (DC) degrades at the image border because
// there are no real neighbor samples there; modes 1-3 (TM/VE/HE) are
// unaffected by position. Modes 4-6 are returned unchanged; the mode
// parser in internal/lossy only produces modes 0-3.
func CheckMode(mbX, mbY int, mode Block16Mode) Block16Mode {
	if mode != PredDC {
		return mode
	}
	switch {
	case mbX == 0 && mbY == 0:
		return PredDCNoTopLeft
	case mbX == 0:
		return PredDCNoLeft
	case mbY == 0:
		return PredDCNoTop
	default:
		return PredDC
	}
}

// PredictBlock16 runs the given mode over an n x n block (16 for luma,
// 8 for chroma) positioned at dst's zero.
func PredictBlock16(mode Block16Mode, dst View, n int) {
	switch mode {
	case PredDC:
		dcBoth(dst, n)
	case PredTM:
		tm(dst, n)
	case PredVE:
		ve(dst, n)
	case PredHE:
		he(dst, n)
	case PredDCNoTop:
		dcNoTop(dst, n)
	case PredDCNoLeft:
		dcNoLeft(dst, n)
	case PredDCNoTopLeft:
		dcNoTopLeft(dst, n)
	}
}

func fillBlock(dst View, n int, v uint8) {
	for j := 0; j < n; j++ {
		row := j * BPS
		for i := 0; i < n; i++ {
			dst.Set(row+i, v)
		}
	}
}

func dcBoth(dst View, n int) {
	dc := 0
	for i := 0; i < n; i++ {
		dc += int(dst.At(i - BPS))
		dc += int(dst.At(-1 + i*BPS))
	}
	shift := 1
	for (1 << shift) < 2*n {
		shift++
	}
	fillBlock(dst, n, uint8((dc+n)>>uint(shift)))
}

func dcNoTop(dst View, n int) {
	dc := 0
	for i := 0; i < n; i++ {
		dc += int(dst.At(-1 + i*BPS))
	}
	shift := 1
	for (1 << shift) < n {
		shift++
	}
	fillBlock(dst, n, uint8((dc+n/2)>>uint(shift)))
}

func dcNoLeft(dst View, n int) {
	dc := 0
	for i := 0; i < n; i++ {
		dc += int(dst.At(i - BPS))
	}
	shift := 1
	for (1 << shift) < n {
		shift++
	}
	fillBlock(dst, n, uint8((dc+n/2)>>uint(shift)))
}

func dcNoTopLeft(dst View, n int) {
	fillBlock(dst, n, 128)
}

func ve(dst View, n int) {
	for j := 0; j < n; j++ {
		row := j * BPS
		for i := 0; i < n; i++ {
			dst.Set(row+i, dst.At(i-BPS))
		}
	}
}

func he(dst View, n int) {
	for j := 0; j < n; j++ {
		v := dst.At(-1 + j*BPS)
		row := j * BPS
		for i := 0; i < n; i++ {
			dst.Set(row+i, v)
		}
	}
}

func tm(dst View, n int) {
	tl := int(dst.At(-1 - BPS))
	for j := 0; j < n; j++ {
		left := int(dst.At(-1 + j*BPS))
		base := left - tl
		row := j * BPS
		for i := 0; i < n; i++ {
			dst.Set(row+i, clip8b(base+int(dst.At(i-BPS))))
		}
	}
}

// PredictLuma4 runs one of the ten 4x4 luma prediction modes, positioned
// at dst's zero.
func PredictLuma4(mode Luma4Mode, dst View) {
	switch mode {
	case Luma4DC:
		dc4(dst)
	case Luma4TM:
		tm4(dst)
	case Luma4VE:
		ve4(dst)
	case Luma4HE:
		he4(dst)
	case Luma4RD:
		rd4(dst)
	case Luma4VR:
		vr4(dst)
	case Luma4LD:
		ld4(dst)
	case Luma4VL:
		vl4(dst)
	case Luma4HD:
		hd4(dst)
	case Luma4HU:
		hu4(dst)
	}
}

func dc4(dst View) {
	dc := 0
	for i := 0; i < 4; i++ {
		dc += int(dst.At(i - BPS))
		dc += int(dst.At(-1 + i*BPS))
	}
	v := uint8((dc + 4) >> 3)
	fillBlock(dst, 4, v)
}

func tm4(dst View) {
	tl := int(dst.At(-1 - BPS))
	for j := 0; j < 4; j++ {
		left := int(dst.At(-1 + j*BPS))
		row := j * BPS
		for i := 0; i < 4; i++ {
			dst.Set(row+i, clip8b(left+int(dst.At(i-BPS))-tl))
		}
	}
}

func ve4(dst View) {
	tm1 := int(dst.At(-1 - BPS))
	t0 := int(dst.At(0 - BPS))
	t1 := int(dst.At(1 - BPS))
	t2 := int(dst.At(2 - BPS))
	t3 := int(dst.At(3 - BPS))
	t4 := int(dst.At(4 - BPS))
	vals := [4]uint8{
		uint8(avg3(tm1, t0, t1)),
		uint8(avg3(t0, t1, t2)),
		uint8(avg3(t1, t2, t3)),
		uint8(avg3(t2, t3, t4)),
	}
	for j := 0; j < 4; j++ {
		row := j * BPS
		for i := 0; i < 4; i++ {
			dst.Set(row+i, vals[i])
		}
	}
}

func he4(dst View) {
	tl := int(dst.At(-1 - BPS))
	l0 := int(dst.At(-1 + 0*BPS))
	l1 := int(dst.At(-1 + 1*BPS))
	l2 := int(dst.At(-1 + 2*BPS))
	l3 := int(dst.At(-1 + 3*BPS))
	vals := [4]uint8{
		uint8(avg3(tl, l0, l1)),
		uint8(avg3(l0, l1, l2)),
		uint8(avg3(l1, l2, l3)),
		uint8(avg3(l2, l3, l3)),
	}
	for j := 0; j < 4; j++ {
		row := j * BPS
		for i := 0; i < 4; i++ {
			dst.Set(row+i, vals[j])
		}
	}
}

func rd4(dst View) {
	tl := int(dst.At(-1 - BPS))
	t0, t1, t2, t3 := int(dst.At(0-BPS)), int(dst.At(1-BPS)), int(dst.At(2-BPS)), int(dst.At(3-BPS))
	l0, l1, l2, l3 := int(dst.At(-1+0*BPS)), int(dst.At(-1+1*BPS)), int(dst.At(-1+2*BPS)), int(dst.At(-1+3*BPS))

	set := func(i, j, v int) { dst.Set(i+j*BPS, uint8(v)) }

	set(0, 3, avg3(l3, l2, l1))
	set(0, 2, avg3(l2, l1, l0))
	set(1, 3, avg3(l2, l1, l0))
	set(0, 1, avg3(l1, l0, tl))
	set(1, 2, avg3(l1, l0, tl))
	set(2, 3, avg3(l1, l0, tl))
	set(0, 0, avg3(l0, tl, t0))
	set(1, 1, avg3(l0, tl, t0))
	set(2, 2, avg3(l0, tl, t0))
	set(3, 3, avg3(l0, tl, t0))
	set(1, 0, avg3(tl, t0, t1))
	set(2, 1, avg3(tl, t0, t1))
	set(3, 2, avg3(tl, t0, t1))
	set(2, 0, avg3(t0, t1, t2))
	set(3, 1, avg3(t0, t1, t2))
	set(3, 0, avg3(t1, t2, t3))
}

func vr4(dst View) {
	tl := int(dst.At(-1 - BPS))
	t0, t1, t2, t3 := int(dst.At(0-BPS)), int(dst.At(1-BPS)), int(dst.At(2-BPS)), int(dst.At(3-BPS))
	l0, l1, l2 := int(dst.At(-1+0*BPS)), int(dst.At(-1+1*BPS)), int(dst.At(-1+2*BPS))

	get := func(i, j int) int { return int(dst.At(i + j*BPS)) }
	set := func(i, j, v int) { dst.Set(i+j*BPS, uint8(v)) }

	set(0, 0, avg2(tl, t0))
	set(1, 0, avg2(t0, t1))
	set(2, 0, avg2(t1, t2))
	set(3, 0, avg2(t2, t3))

	set(0, 1, avg3(l0, tl, t0))
	set(1, 1, avg3(tl, t0, t1))
	set(2, 1, avg3(t0, t1, t2))
	set(3, 1, avg3(t1, t2, t3))

	set(0, 2, avg3(l1, l0, tl))
	set(1, 2, get(0, 0))
	set(2, 2, get(1, 0))
	set(3, 2, get(2, 0))

	set(0, 3, avg3(l2, l1, l0))
	set(1, 3, get(0, 1))
	set(2, 3, get(1, 1))
	set(3, 3, get(2, 1))
}

func ld4(dst View) {
	a := int(dst.At(0 - BPS))
	b := int(dst.At(1 - BPS))
	c := int(dst.At(2 - BPS))
	d := int(dst.At(3 - BPS))
	e := int(dst.At(4 - BPS))
	f := int(dst.At(5 - BPS))
	g := int(dst.At(6 - BPS))
	h := int(dst.At(7 - BPS))

	set := func(i, j, v int) { dst.Set(i+j*BPS, uint8(v)) }

	set(0, 0, avg3(a, b, c))
	set(1, 0, avg3(b, c, d))
	set(0, 1, avg3(b, c, d))
	set(2, 0, avg3(c, d, e))
	set(1, 1, avg3(c, d, e))
	set(0, 2, avg3(c, d, e))
	set(3, 0, avg3(d, e, f))
	set(2, 1, avg3(d, e, f))
	set(1, 2, avg3(d, e, f))
	set(0, 3, avg3(d, e, f))
	set(3, 1, avg3(e, f, g))
	set(2, 2, avg3(e, f, g))
	set(1, 3, avg3(e, f, g))
	set(3, 2, avg3(f, g, h))
	set(2, 3, avg3(f, g, h))
	set(3, 3, avg3(g, h, h))
}

func vl4(dst View) {
	a := int(dst.At(0 - BPS))
	b := int(dst.At(1 - BPS))
	c := int(dst.At(2 - BPS))
	d := int(dst.At(3 - BPS))
	e := int(dst.At(4 - BPS))
	f := int(dst.At(5 - BPS))
	g := int(dst.At(6 - BPS))
	h := int(dst.At(7 - BPS))

	set := func(i, j, v int) { dst.Set(i+j*BPS, uint8(v)) }

	set(0, 0, avg2(a, b))
	set(1, 0, avg2(b, c))
	set(0, 2, avg2(b, c))
	set(2, 0, avg2(c, d))
	set(1, 2, avg2(c, d))
	set(3, 0, avg2(d, e))
	set(2, 2, avg2(d, e))

	set(0, 1, avg3(a, b, c))
	set(1, 1, avg3(b, c, d))
	set(0, 3, avg3(b, c, d))
	set(2, 1, avg3(c, d, e))
	set(1, 3, avg3(c, d, e))
	set(3, 1, avg3(d, e, f))
	set(2, 3, avg3(d, e, f))
	set(3, 2, avg3(e, f, g))
	set(3, 3, avg3(f, g, h))
}

func hd4(dst View) {
	tl := int(dst.At(-1 - BPS))
	t0, t1, t2 := int(dst.At(0-BPS)), int(dst.At(1-BPS)), int(dst.At(2-BPS))
	l0, l1, l2, l3 := int(dst.At(-1+0*BPS)), int(dst.At(-1+1*BPS)), int(dst.At(-1+2*BPS)), int(dst.At(-1+3*BPS))

	get := func(i, j int) int { return int(dst.At(i + j*BPS)) }
	set := func(i, j, v int) { dst.Set(i+j*BPS, uint8(v)) }

	set(0, 0, avg2(tl, l0))
	set(1, 0, avg3(l0, tl, t0))
	set(2, 0, avg3(tl, t0, t1))
	set(3, 0, avg3(t0, t1, t2))

	set(0, 1, avg2(l0, l1))
	set(1, 1, avg3(tl, l0, l1))
	set(2, 1, get(0, 0))
	set(3, 1, get(1, 0))

	set(0, 2, avg2(l1, l2))
	set(1, 2, avg3(l0, l1, l2))
	set(2, 2, get(0, 1))
	set(3, 2, get(1, 1))

	set(0, 3, avg2(l2, l3))
	set(1, 3, avg3(l1, l2, l3))
	set(2, 3, get(0, 2))
	set(3, 3, get(1, 2))
}

func hu4(dst View) {
	l0, l1, l2, l3 := int(dst.At(-1+0*BPS)), int(dst.At(-1+1*BPS)), int(dst.At(-1+2*BPS)), int(dst.At(-1+3*BPS))

	get := func(i, j int) int { return int(dst.At(i + j*BPS)) }
	set := func(i, j, v int) { dst.Set(i+j*BPS, uint8(v)) }

	set(0, 0, avg2(l0, l1))
	set(1, 0, avg3(l0, l1, l2))
	set(2, 0, avg2(l1, l2))
	set(3, 0, avg3(l1, l2, l3))

	set(0, 1, get(2, 0))
	set(1, 1, get(3, 0))
	set(2, 1, avg2(l2, l3))
	set(3, 1, avg3(l2, l3, l3))

	set(0, 2, get(2, 1))
	set(1, 2, get(3, 1))
	set(2, 2, l3)
	set(3, 2, l3)

	set(0, 3, l3)
	set(1, 3, l3)
	set(2, 3, l3)
	set(3, 3, l3)
}
