package frame

// Fancy upsampling for YUV 4:2:0 -> packed RGB. Implements the
// diamond-shaped 4-tap interpolation kernel used to upsample chroma to
// the luma grid before color conversion: given a 2x2 chroma block
// [tl t / l cur], the four interpolated sub-pixels are
//
//	top-left  = (9*tl + 3*t + 3*l +   cur + 8) / 16
//	top-right = (3*tl + 9*t +   l + 3*cur + 8) / 16
//	bot-left  = (3*tl +   t + 9*l + 3*cur + 8) / 16
//	bot-right = (  tl + 3*t + 3*l + 9*cur + 8) / 16
//
// U and V are interpolated together using the same packed-uint32 trick as
// the reference: loadUV packs u into the low 16 bits and v into the high
// 16 bits, so one addition/shift updates both channels at once.

func loadUV(u, v byte) uint32 {
	return uint32(u) | (uint32(v) << 16)
}

// UpsampleLinePair upsamples one pair of chroma rows (topU/V, botU/V)
// together with two luma rows (topY, botY) into packed pixels of the
// given format. botY may be nil when processing the last row of an
// odd-height image, in which case botDst is left untouched.
func UpsampleLinePair(f PixelFormat, topY, botY, topU, topV, botU, botV, topDst, botDst []byte, width int) {
	if width <= 0 {
		return
	}
	xStep := BytesPerPixel(f)
	lastPixelPair := (width - 1) >> 1

	tlUV := loadUV(topU[0], topV[0])
	lUV := loadUV(botU[0], botV[0])

	plot := func(y int, uv uint32, dst []byte) {
		WritePixel(f, y, int(uv&0xff), int((uv>>16)&0xff), 255, dst)
	}

	uv0 := (3*tlUV + lUV + 0x00020002) >> 2
	plot(int(topY[0]), uv0, topDst[0:])
	if botY != nil {
		uv0 = (3*lUV + tlUV + 0x00020002) >> 2
		plot(int(botY[0]), uv0, botDst[0:])
	}

	for x := 1; x <= lastPixelPair; x++ {
		tUV := loadUV(topU[x], topV[x])
		uv := loadUV(botU[x], botV[x])

		avg := tlUV + tUV + lUV + uv + 0x00080008
		diag12 := (avg + 2*(tUV+lUV)) >> 3
		diag03 := (avg + 2*(tlUV+uv)) >> 3

		{
			u0 := (diag12 + tlUV) >> 1
			u1 := (diag03 + tUV) >> 1
			plot(int(topY[2*x-1]), u0, topDst[(2*x-1)*xStep:])
			plot(int(topY[2*x]), u1, topDst[(2*x)*xStep:])
		}
		if botY != nil {
			u0 := (diag03 + lUV) >> 1
			u1 := (diag12 + uv) >> 1
			plot(int(botY[2*x-1]), u0, botDst[(2*x-1)*xStep:])
			plot(int(botY[2*x]), u1, botDst[(2*x)*xStep:])
		}

		tlUV = tUV
		lUV = uv
	}

	if width&1 == 0 {
		uv0 = (3*tlUV + lUV + 0x00020002) >> 2
		plot(int(topY[width-1]), uv0, topDst[(width-1)*xStep:])
		if botY != nil {
			uv0 = (3*lUV + tlUV + 0x00020002) >> 2
			plot(int(botY[width-1]), uv0, botDst[(width-1)*xStep:])
		}
	}
}

// PointSampleRow performs nearest-neighbor upsampling of a single row of
// YUV 4:2:0 data to a packed pixel format. Each chroma sample covers two
// luma pixels. Used when fancy upsampling is disabled.
func PointSampleRow(f PixelFormat, y, u, v []byte, dst []byte, width int) {
	bpp := BytesPerPixel(f)
	for x := 0; x < width; x++ {
		cx := x >> 1
		WritePixel(f, int(y[x]), int(u[cx]), int(v[cx]), 255, dst[x*bpp:])
	}
}
