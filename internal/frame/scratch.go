package frame

import "fmt"

// View is an index-translating window over a linear byte buffer that lets
// callers use the negative-offset indexing pervasive in VP8's reference
// arithmetic (dst[-1], dst[-BPS], dst[x+y*BPS]) without raw pointer
// arithmetic. It carries no state beyond a backing slice and a zero
// position: View{buf, zero}.At(i) reads buf[zero+i].
//
// Bounds are checked only when the webpdebug build tag is set (see
// scratch_debug.go / scratch_release.go); DebugBounds is a compile-time
// constant so the release build compiles the check away entirely.
type View struct {
	buf  []byte
	zero int
}

// NewView wraps buf with the given zero position.
func NewView(buf []byte, zero int) View {
	return View{buf: buf, zero: zero}
}

// At returns the byte at logical index i (i.e. buf[zero+i]). i may be
// negative.
func (v View) At(i int) byte {
	idx := v.zero + i
	if DebugBounds {
		v.checkBounds(idx)
	}
	return v.buf[idx]
}

// Set writes b at logical index i.
func (v View) Set(i int, b byte) {
	idx := v.zero + i
	if DebugBounds {
		v.checkBounds(idx)
	}
	v.buf[idx] = b
}

// Add clips (v.At(i) + delta) to [0,255] and stores it back at i. This is
// the common "accumulate a transform residual" write pattern.
func (v View) Add(i, delta int) {
	v.Set(i, clip8b(int(v.At(i))+delta))
}

// Offset returns a View over the same backing buffer with zero shifted by
// delta — e.g. the view for a 4x4 sub-block at byte offset off within an
// MB-relative view mb is mb.Offset(off).
func (v View) Offset(delta int) View {
	return View{buf: v.buf, zero: v.zero + delta}
}

// Slice returns the raw backing bytes covering the logical range [lo, hi).
// The returned slice aliases the View's buffer; writes through it are
// visible to the View and vice versa.
func (v View) Slice(lo, hi int) []byte {
	a, b := v.zero+lo, v.zero+hi
	if DebugBounds {
		v.checkBounds(a)
		v.checkBounds(b - 1)
	}
	return v.buf[a:b]
}

// Split divides the backing buffer into the portion strictly before zero
// and the portion at-and-after zero, mirroring the Rust original's
// before/at-and-after split of an offset array.
func (v View) Split() (before, atAndAfter []byte) {
	return v.buf[:v.zero], v.buf[v.zero:]
}

func (v View) checkBounds(idx int) {
	if idx < 0 || idx >= len(v.buf) {
		panic(fmt.Sprintf("frame: View index %d out of range [0,%d)", idx, len(v.buf)))
	}
}
