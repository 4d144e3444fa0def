package frame

// The VP8 in-loop deblocking filter, in its "simple" (luma-only, 2-tap)
// and "complex" (luma+chroma, 4/6-tap with HEV gating) forms, each with
// macroblock-edge and inner-4x4-edge variants. Filters operate on the row
// cache (cacheY/cacheU/cacheV), not the prediction scratch buffer, and
// read up to 4 samples on either side of an edge via a base-offset
// convention: base-4*stride never goes negative, because FilterMB filters
// a macroblock's left and top edges only when mbX > 0 and mbY > 0, and
// inner edges lie at least four samples inside the macroblock.

func needsFilter(p1, p0, q0, q1, thresh int) bool {
	return 4*int(kabs0(p0-q0))+int(kabs0(p1-q1)) <= thresh
}

func needsFilter2(p3, p2, p1, p0, q0, q1, q2, q3, thresh, ithresh int) bool {
	if !needsFilter(p1, p0, q0, q1, thresh) {
		return false
	}
	return int(kabs0(p3-p2)) <= ithresh &&
		int(kabs0(p2-p1)) <= ithresh &&
		int(kabs0(p1-p0)) <= ithresh &&
		int(kabs0(q3-q2)) <= ithresh &&
		int(kabs0(q2-q1)) <= ithresh &&
		int(kabs0(q1-q0)) <= ithresh
}

func isHEV(p1, p0, q0, q1, hevThresh int) bool {
	return int(kabs0(p1-p0)) > hevThresh || int(kabs0(q1-q0)) > hevThresh
}

// FInfo holds the per-macroblock filter strength derived from a segment's
// filter level, the frame's sharpness setting, and any per-mode/per-ref
// loop filter delta — precomputed once per segment rather than per
// macroblock, per spec's filter-strength precomputation invariant.
type FInfo struct {
	FLimit    uint8
	FILevel   uint8
	FInner    bool
	HevThresh uint8
}

func doFilter2(p []byte, off, step int) {
	p1 := int(p[off-2*step])
	p0 := int(p[off-step])
	q0 := int(p[off])
	q1 := int(p[off+step])

	a := 3*(q0-p0) + int(ksclip1(p1-q1))
	a1 := int(ksclip2((a + 4) >> 3))
	a2 := int(ksclip2((a + 3) >> 3))
	p[off-step] = kclip1(p0 + a2)
	p[off] = kclip1(q0 - a1)
}

func doFilter4(p []byte, off, step int) {
	p1 := int(p[off-2*step])
	p0 := int(p[off-step])
	q0 := int(p[off])
	q1 := int(p[off+step])

	a := 3 * (q0 - p0)
	a1 := int(ksclip2((a + 4) >> 3))
	a2 := int(ksclip2((a + 3) >> 3))
	a3 := (a1 + 1) >> 1
	p[off-2*step] = kclip1(p1 + a3)
	p[off-step] = kclip1(p0 + a2)
	p[off] = kclip1(q0 - a1)
	p[off+step] = kclip1(q1 - a3)
}

func doFilter6(p []byte, off, step int) {
	p2 := int(p[off-3*step])
	p1 := int(p[off-2*step])
	p0 := int(p[off-step])
	q0 := int(p[off])
	q1 := int(p[off+step])
	q2 := int(p[off+2*step])

	a := int(ksclip1(3*(q0-p0) + int(ksclip1(p1-q1))))
	a1 := (27*a + 63) >> 7
	a2 := (18*a + 63) >> 7
	a3 := (9*a + 63) >> 7
	p[off-3*step] = kclip1(p2 + a3)
	p[off-2*step] = kclip1(p1 + a2)
	p[off-step] = kclip1(p0 + a1)
	p[off] = kclip1(q0 - a1)
	p[off+step] = kclip1(q1 - a2)
	p[off+2*step] = kclip1(q2 - a3)
}

// simpleVFilter16 filters a 16-wide vertical (horizontal-edge) boundary.
func simpleVFilter16(p []byte, base, stride, thresh int) {
	thresh2 := 2*thresh + 1
	for i := 0; i < 16; i++ {
		off := base + i
		p1, p0, q0, q1 := int(p[off-2*stride]), int(p[off-stride]), int(p[off]), int(p[off+stride])
		if needsFilter(p1, p0, q0, q1, thresh2) {
			doFilter2(p, off, stride)
		}
	}
}

// simpleHFilter16 filters a 16-high horizontal (vertical-edge) boundary.
func simpleHFilter16(p []byte, base, stride, thresh int) {
	thresh2 := 2*thresh + 1
	for i := 0; i < 16; i++ {
		off := base + i*stride
		p1, p0, q0, q1 := int(p[off-2]), int(p[off-1]), int(p[off]), int(p[off+1])
		if needsFilter(p1, p0, q0, q1, thresh2) {
			doFilter2(p, off, 1)
		}
	}
}

func simpleVFilter16i(p []byte, base, stride, thresh int) {
	for k := 1; k <= 3; k++ {
		simpleVFilter16(p, base+k*4*stride, stride, thresh)
	}
}

func simpleHFilter16i(p []byte, base, stride, thresh int) {
	for k := 1; k <= 3; k++ {
		simpleHFilter16(p, base+k*4, stride, thresh)
	}
}

// filterLoopEdge implements a macroblock-edge filter line: needsFilter2
// gates it, HEV selects the 2-tap strong filter over the 6-tap one.
func filterLoopEdge(p []byte, base, hstride, vstride, size, thresh, ithresh, hevT int) {
	thresh2 := 2*thresh + 1
	off := base
	for i := 0; i < size; i++ {
		p3, p2, p1, p0 := int(p[off-4*hstride]), int(p[off-3*hstride]), int(p[off-2*hstride]), int(p[off-hstride])
		q0, q1, q2, q3 := int(p[off]), int(p[off+hstride]), int(p[off+2*hstride]), int(p[off+3*hstride])
		if needsFilter2(p3, p2, p1, p0, q0, q1, q2, q3, thresh2, ithresh) {
			if isHEV(p1, p0, q0, q1, hevT) {
				doFilter2(p, off, hstride)
			} else {
				doFilter6(p, off, hstride)
			}
		}
		off += vstride
	}
}

// filterLoopInner implements an inner 4x4 edge filter line: same gating,
// HEV selects the 2-tap filter over the 4-tap one.
func filterLoopInner(p []byte, base, hstride, vstride, size, thresh, ithresh, hevT int) {
	thresh2 := 2*thresh + 1
	off := base
	for i := 0; i < size; i++ {
		p3, p2, p1, p0 := int(p[off-4*hstride]), int(p[off-3*hstride]), int(p[off-2*hstride]), int(p[off-hstride])
		q0, q1, q2, q3 := int(p[off]), int(p[off+hstride]), int(p[off+2*hstride]), int(p[off+3*hstride])
		if needsFilter2(p3, p2, p1, p0, q0, q1, q2, q3, thresh2, ithresh) {
			if isHEV(p1, p0, q0, q1, hevT) {
				doFilter2(p, off, hstride)
			} else {
				doFilter4(p, off, hstride)
			}
		}
		off += vstride
	}
}

func complexVFilter16(p []byte, base, stride, thresh, ithresh, hevT int) {
	filterLoopEdge(p, base, stride, 1, 16, thresh, ithresh, hevT)
}

func complexHFilter16(p []byte, base, stride, thresh, ithresh, hevT int) {
	filterLoopEdge(p, base, 1, stride, 16, thresh, ithresh, hevT)
}

func complexVFilter8(u, v []byte, uBase, vBase, stride, thresh, ithresh, hevT int) {
	filterLoopEdge(u, uBase, stride, 1, 8, thresh, ithresh, hevT)
	filterLoopEdge(v, vBase, stride, 1, 8, thresh, ithresh, hevT)
}

func complexHFilter8(u, v []byte, uBase, vBase, stride, thresh, ithresh, hevT int) {
	filterLoopEdge(u, uBase, 1, stride, 8, thresh, ithresh, hevT)
	filterLoopEdge(v, vBase, 1, stride, 8, thresh, ithresh, hevT)
}

func complexVFilter16i(p []byte, base, stride, thresh, ithresh, hevT int) {
	for k := 1; k <= 3; k++ {
		filterLoopInner(p, base+k*4*stride, stride, 1, 16, thresh, ithresh, hevT)
	}
}

func complexHFilter16i(p []byte, base, stride, thresh, ithresh, hevT int) {
	for k := 1; k <= 3; k++ {
		filterLoopInner(p, base+k*4, 1, stride, 16, thresh, ithresh, hevT)
	}
}

func complexVFilter8i(u, v []byte, uBase, vBase, stride, thresh, ithresh, hevT int) {
	filterLoopInner(u, uBase+4*stride, stride, 1, 8, thresh, ithresh, hevT)
	filterLoopInner(v, vBase+4*stride, stride, 1, 8, thresh, ithresh, hevT)
}

func complexHFilter8i(u, v []byte, uBase, vBase, stride, thresh, ithresh, hevT int) {
	filterLoopInner(u, uBase+4, 1, stride, 8, thresh, ithresh, hevT)
	filterLoopInner(v, vBase+4, 1, stride, 8, thresh, ithresh, hevT)
}

// FilterMB applies deblocking to one macroblock position, following
// spec's §4.E dispatch exactly: horizontal edge first (if mbX>0), then
// inner horizontal edges (if fInner), then vertical edge (if mbY>0), then
// inner vertical edges (if fInner). limit==0 means filtering is skipped
// entirely for this macroblock.
func FilterMB(cacheY, cacheU, cacheV []byte, yOff, uOff, vOff, yStride, uvStride int, mbX, mbY int, info FInfo, simple bool) {
	limit := int(info.FLimit)
	if limit == 0 {
		return
	}
	ilevel := int(info.FILevel)
	hevT := int(info.HevThresh)

	if simple {
		if mbX > 0 {
			simpleHFilter16(cacheY, yOff, yStride, limit+4)
		}
		if info.FInner {
			simpleHFilter16i(cacheY, yOff, yStride, limit)
		}
		if mbY > 0 {
			simpleVFilter16(cacheY, yOff, yStride, limit+4)
		}
		if info.FInner {
			simpleVFilter16i(cacheY, yOff, yStride, limit)
		}
		return
	}

	if mbX > 0 {
		complexHFilter16(cacheY, yOff, yStride, limit+4, ilevel, hevT)
		complexHFilter8(cacheU, cacheV, uOff, vOff, uvStride, limit+4, ilevel, hevT)
	}
	if info.FInner {
		complexHFilter16i(cacheY, yOff, yStride, limit, ilevel, hevT)
		complexHFilter8i(cacheU, cacheV, uOff, vOff, uvStride, limit, ilevel, hevT)
	}
	if mbY > 0 {
		complexVFilter16(cacheY, yOff, yStride, limit+4, ilevel, hevT)
		complexVFilter8(cacheU, cacheV, uOff, vOff, uvStride, limit+4, ilevel, hevT)
	}
	if info.FInner {
		complexVFilter16i(cacheY, yOff, yStride, limit, ilevel, hevT)
		complexVFilter8i(cacheU, cacheV, uOff, vOff, uvStride, limit, ilevel, hevT)
	}
}
