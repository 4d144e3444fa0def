package frame

// BT.601 YUV -> RGB conversion in fixed-point arithmetic, plus the packed
// pixel-format writers built on top of it. The fixed-point constants
// match the reference decoder's yuv.h bit for bit; the format writers
// beyond plain RGB/BGR (RGBA, BGRA, ARGB, RGB565, RGBA4444 and their
// premultiplied variants) are this decoder's own, since the reference
// only exposes packed-format conversion on the alpha/lossless path, not
// out of the YUV pipeline.

const (
	yuvFix  = 16
	yuvHalf = 1 << (yuvFix - 1)
	yuvFix2 = 6
	yuvMask = (256 << yuvFix2) - 1

	kYScale = 19077
	kRCr    = 26149
	kGCb    = 6419
	kGCr    = 13320
	kBCb    = 33050

	kRBias = 14234
	kGBias = 8708
	kBBias = 17685
)

var vp8kClip [yuvMask + 1]uint8

func init() {
	for i := 0; i <= yuvMask; i++ {
		v := i >> yuvFix2
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		vp8kClip[i] = uint8(v)
	}
}

func multHi(v, coeff int) int {
	return (v * coeff) >> 8
}

// YUVToR converts (y, v) to the R component.
func YUVToR(y, v int) uint8 {
	val := multHi(y, kYScale) + multHi(v, kRCr) - kRBias
	return clipYUV(val)
}

// YUVToG converts (y, u, v) to the G component.
func YUVToG(y, u, v int) uint8 {
	val := multHi(y, kYScale) - multHi(u, kGCb) - multHi(v, kGCr) + kGBias
	return clipYUV(val)
}

// YUVToB converts (y, u) to the B component.
func YUVToB(y, u int) uint8 {
	val := multHi(y, kYScale) + multHi(u, kBCb) - kBBias
	return clipYUV(val)
}

func clipYUV(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > yuvMask {
		return 255
	}
	return vp8kClip[val]
}

// PixelFormat selects the packed output layout WritePixel produces.
type PixelFormat int

const (
	FormatRGB PixelFormat = iota
	FormatBGR
	FormatRGBA
	FormatBGRA
	FormatARGB
	FormatRGBA4444
	FormatRGB565
)

// BytesPerPixel returns the packed pixel stride for a format.
func BytesPerPixel(f PixelFormat) int {
	switch f {
	case FormatRGB, FormatBGR:
		return 3
	case FormatRGBA, FormatBGRA, FormatARGB:
		return 4
	case FormatRGBA4444, FormatRGB565:
		return 2
	default:
		return 3
	}
}

// HasAlpha reports whether f carries its own alpha channel (as opposed to
// an implicit opaque 255).
func HasAlpha(f PixelFormat) bool {
	return f == FormatRGBA || f == FormatBGRA || f == FormatARGB || f == FormatRGBA4444
}

// WritePixel converts one YUV(+A) sample to the packed format f at dst.
// a is ignored by formats with no alpha channel; callers pass 255 for
// fully opaque decode (VP8 without an alpha chunk).
func WritePixel(f PixelFormat, y, u, v int, a uint8, dst []byte) {
	switch f {
	case FormatRGB:
		dst[0] = YUVToR(y, v)
		dst[1] = YUVToG(y, u, v)
		dst[2] = YUVToB(y, u)
	case FormatBGR:
		dst[0] = YUVToB(y, u)
		dst[1] = YUVToG(y, u, v)
		dst[2] = YUVToR(y, v)
	case FormatRGBA:
		dst[0] = YUVToR(y, v)
		dst[1] = YUVToG(y, u, v)
		dst[2] = YUVToB(y, u)
		dst[3] = a
	case FormatBGRA:
		dst[0] = YUVToB(y, u)
		dst[1] = YUVToG(y, u, v)
		dst[2] = YUVToR(y, v)
		dst[3] = a
	case FormatARGB:
		dst[0] = a
		dst[1] = YUVToR(y, v)
		dst[2] = YUVToG(y, u, v)
		dst[3] = YUVToB(y, u)
	case FormatRGBA4444:
		r, g, b := YUVToR(y, v), YUVToG(y, u, v), YUVToB(y, u)
		hi := (uint16(r)&0xf0)<<8 | (uint16(g)&0xf0)<<4 | (uint16(b) & 0xf0) | uint16(a)>>4
		dst[0] = byte(hi >> 8)
		dst[1] = byte(hi)
	case FormatRGB565:
		r, g, b := YUVToR(y, v), YUVToG(y, u, v), YUVToB(y, u)
		packed := (uint16(r)&0xf8)<<8 | (uint16(g)&0xfc)<<3 | uint16(b)>>3
		dst[0] = byte(packed >> 8)
		dst[1] = byte(packed)
	}
}

// PremultiplyRow scales the color channels of one row of packed pixels by
// their own alpha, in place — the post-pass the reference decoder runs
// for MODE_rgbA/MODE_bgrA/MODE_Argb/MODE_rgbA_4444, separated out here so
// WritePixel itself never needs to special-case premultiplication.
func PremultiplyRow(f PixelFormat, row []byte, width int) {
	bpp := BytesPerPixel(f)
	switch f {
	case FormatRGBA, FormatBGRA:
		for x := 0; x < width; x++ {
			px := row[x*bpp : x*bpp+4]
			a := px[3]
			px[0] = premulByte(px[0], a)
			px[1] = premulByte(px[1], a)
			px[2] = premulByte(px[2], a)
		}
	case FormatARGB:
		for x := 0; x < width; x++ {
			px := row[x*bpp : x*bpp+4]
			a := px[0]
			px[1] = premulByte(px[1], a)
			px[2] = premulByte(px[2], a)
			px[3] = premulByte(px[3], a)
		}
	case FormatRGBA4444:
		for x := 0; x < width; x++ {
			px := row[x*bpp : x*bpp+2]
			hi := uint16(px[0])<<8 | uint16(px[1])
			a4 := hi & 0xf
			a := uint8(a4 | a4<<4)
			r := premulByte(uint8((hi>>8)&0xf0), a)
			g := premulByte(uint8((hi>>4)&0xf0), a)
			b := premulByte(uint8(hi&0xf0), a)
			hi = (uint16(r)&0xf0)<<8 | (uint16(g)&0xf0)<<4 | (uint16(b) & 0xf0) | uint16(a4)
			px[0] = byte(hi >> 8)
			px[1] = byte(hi)
		}
	}
}

func premulByte(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}
