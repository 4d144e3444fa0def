package frame

// BPS is the stride, in bytes, of one row of the scratch reconstruction
// buffer. 32 accommodates a 16-wide luma block plus left/right border.
const BPS = 32

// YUVSize is the size of the per-decoder scratch buffer: a 17-row luma
// plane (16 rows + 1 border row), followed by 9 rows (8 chroma rows + 1
// border row) that hold U and V side by side — U occupies columns
// [-1,7] of each row, V occupies columns [15,23] (see UOff/VOff below) —
// so the two chroma planes share the same row span instead of stacking.
const YUVSize = BPS*17 + BPS*9

// Offsets of the three planes within the scratch buffer. Y_OFF leaves one
// border row and one border column ahead of the first luma sample; U and V
// follow immediately, each with their own one-pixel border.
const (
	YOff = BPS*1 + 8
	UOff = YOff + BPS*16 + BPS
	VOff = UOff + 16
)

// clip8b saturates v to [0, 255]. Uses an unsigned comparison so the
// common in-range case is a single branch.
func clip8b(v int) uint8 {
	if uint(v) <= 255 {
		return uint8(v)
	}
	return uint8(^(v >> 63) & 255)
}

// avg2 returns the rounded average of two samples.
func avg2(p1, p2 int) int {
	return (p1 + p2 + 1) >> 1
}

// avg3 returns the rounded, center-weighted average of three samples.
func avg3(p1, p2, p3 int) int {
	return (p1 + 2*p2 + p3 + 2) >> 2
}

// Saturating/absolute-value lookup tables used by the deblocking filter.
// Negative-index access is emulated with fixed offsets into oversized
// arrays, exactly mirroring the scratch buffer's own offset convention.
var (
	sclip1 [893 + 892 + 1]int8
	sclip2 [112 + 112 + 1]int8
	clip1  [255 + 511 + 1]uint8
	abs0   [255 + 255 + 1]uint8
)

const (
	sclip1Offset = 893
	sclip2Offset = 112
	clip1Offset  = 255
	abs0Offset   = 255
)

func ksclip1(v int) int8 { return sclip1[sclip1Offset+v] }
func ksclip2(v int) int8 { return sclip2[sclip2Offset+v] }
func kclip1(v int) uint8 { return clip1[clip1Offset+v] }
func kabs0(v int) uint8  { return abs0[abs0Offset+v] }

func init() {
	for i := -893; i <= 892; i++ {
		sclip1[sclip1Offset+i] = int8(clampInt(i, -128, 127))
	}
	for i := -112; i <= 112; i++ {
		sclip2[sclip2Offset+i] = int8(clampInt(i, -16, 15))
	}
	for i := -255; i <= 511; i++ {
		clip1[clip1Offset+i] = uint8(clampInt(i, 0, 255))
	}
	for i := -255; i <= 255; i++ {
		v := i
		if v < 0 {
			v = -v
		}
		abs0[abs0Offset+i] = uint8(v)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
