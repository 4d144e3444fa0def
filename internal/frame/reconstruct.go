package frame

// Reconstructor rebuilds a VP8 key frame's YUV planes one macroblock row
// at a time: predict each block from its already-reconstructed
// neighbors, add back the dequantized residual, stash the row's bottom
// samples for the row below, and copy the result into the caller's
// output cache. Filtering is a separate pass (FilterRow) run once a row
// has been fully reconstructed, matching the reference decoder's own
// two-phase per-row pipeline.
type Reconstructor struct {
	mbW, mbH int

	buf  []byte // YUVSize-byte scratch: one macroblock's working set
	yuvT []TopSamples

	cacheY, cacheU, cacheV       []byte
	cacheYStride, cacheUVStride  int
}

// NewReconstructor builds a Reconstructor writing into the given output
// caches. buf must be at least YUVSize bytes and is retained, not copied.
func NewReconstructor(mbW, mbH int, buf []byte, yuvT []TopSamples, cacheY, cacheU, cacheV []byte, yStride, uvStride int) *Reconstructor {
	return &Reconstructor{
		mbW: mbW, mbH: mbH,
		buf: buf, yuvT: yuvT,
		cacheY: cacheY, cacheU: cacheU, cacheV: cacheV,
		cacheYStride: yStride, cacheUVStride: uvStride,
	}
}

// ReconstructRow reconstructs every macroblock in row mbY, given its
// parsed per-macroblock data, and writes the result into the output
// caches. Filtering is not applied here; call FilterRow afterward.
func (r *Reconstructor) ReconstructRow(mbY int, row []MBData) {
	buf := r.buf
	yView := NewView(buf, YOff)
	uView := NewView(buf, UOff)
	vView := NewView(buf, VOff)

	// Seed the left-column border for this row.
	for j := 0; j < 16; j++ {
		yView.Set(j*BPS-1, 129)
	}
	for j := 0; j < 8; j++ {
		uView.Set(j*BPS-1, 129)
		vView.Set(j*BPS-1, 129)
	}

	// Seed the top-left corner: 129 if a row of context already exists
	// above, and on the frame's first row fill the whole top border
	// (including the corner) with 127.
	if mbY > 0 {
		yView.Set(-1-BPS, 129)
		uView.Set(-1-BPS, 129)
		vView.Set(-1-BPS, 129)
	} else {
		fillRun(yView.Slice(-BPS-1, -BPS-1+16+4+1), 127)
		fillRun(uView.Slice(-BPS-1, -BPS-1+8+1), 127)
		fillRun(vView.Slice(-BPS-1, -BPS-1+8+1), 127)
	}

	for mbX := 0; mbX < r.mbW; mbX++ {
		block := &row[mbX]

		if mbX > 0 {
			rotateLeftContext(yView, 16)
			rotateLeftContext(uView, 8)
			rotateLeftContext(vView, 8)
		}

		top := &r.yuvT[mbX]
		if mbY > 0 {
			copy(yView.Slice(-BPS, -BPS+16), top.Y[:])
			copy(uView.Slice(-BPS, -BPS+8), top.U[:])
			copy(vView.Slice(-BPS, -BPS+8), top.V[:])
		}

		coeffs := block.Coeffs[:]
		bits := block.NonZeroY

		if block.IsI4x4 {
			r.predictAndTransformI4x4(yView, mbX, mbY, top, block, coeffs, bits)
		} else {
			mode := CheckMode(mbX, mbY, Block16Mode(block.IModes[0]))
			PredictBlock16(mode, yView, 16)
			if bits != 0 {
				for n := 0; n < 16; n++ {
					doTransform(bits, coeffs[n*16:], yView.Offset(kScan[n]))
					bits <<= 2
				}
			}
		}

		uvMode := CheckMode(mbX, mbY, Block16Mode(block.UVMode))
		PredictBlock16(uvMode, uView, 8)
		PredictBlock16(uvMode, vView, 8)
		doUVTransform(block.NonZeroUV>>0, coeffs[16*16:], uView)
		doUVTransform(block.NonZeroUV>>8, coeffs[20*16:], vView)

		if mbY < r.mbH-1 {
			copy(top.Y[:], yView.Slice(15*BPS, 15*BPS+16))
			copy(top.U[:], uView.Slice(7*BPS, 7*BPS+8))
			copy(top.V[:], vView.Slice(7*BPS, 7*BPS+8))
		}

		r.emit(mbX, mbY, yView, uView, vView)
	}
}

// predictAndTransformI4x4 handles the sixteen-4x4-mode luma path,
// including top-right replication for the rightmost sub-block column.
func (r *Reconstructor) predictAndTransformI4x4(yView View, mbX, mbY int, top *TopSamples, block *MBData, coeffs []int16, bits uint32) {
	trOff := -BPS + 16
	if mbY > 0 {
		if mbX >= r.mbW-1 {
			fillRun(yView.Slice(trOff, trOff+4), top.Y[15])
		} else {
			copy(yView.Slice(trOff, trOff+4), r.yuvT[mbX+1].Y[:4])
		}
	}
	// Replicate the top-right samples below each sub-block row: the
	// reference decoder treats them as 4-byte units read through a wider
	// stride, which lands the copy at rows 3, 7 and 11.
	for row := 1; row <= 3; row++ {
		off := trOff + row*4*BPS
		copy(yView.Slice(off, off+4), yView.Slice(trOff, trOff+4))
	}

	for n := 0; n < 16; n++ {
		dst := yView.Offset(kScan[n])
		PredictLuma4(Luma4Mode(block.IModes[n]), dst)
		doTransform(bits, coeffs[n*16:], dst)
		bits <<= 2
	}
}

// emit copies one reconstructed macroblock from the scratch buffer into
// the output caches.
func (r *Reconstructor) emit(mbX, mbY int, yView, uView, vView View) {
	yOff := mbY*16*r.cacheYStride + mbX*16
	uvOff := mbY*8*r.cacheUVStride + mbX*8
	for j := 0; j < 16; j++ {
		copy(r.cacheY[yOff+j*r.cacheYStride:yOff+j*r.cacheYStride+16], yView.Slice(j*BPS, j*BPS+16))
	}
	for j := 0; j < 8; j++ {
		copy(r.cacheU[uvOff+j*r.cacheUVStride:uvOff+j*r.cacheUVStride+8], uView.Slice(j*BPS, j*BPS+8))
		copy(r.cacheV[uvOff+j*r.cacheUVStride:uvOff+j*r.cacheUVStride+8], vView.Slice(j*BPS, j*BPS+8))
	}
}

// FilterRow applies the in-loop deblocking filter to every macroblock in
// row mbY, reading filter strength from fInfo[mbX] and operating directly
// on the output caches (filtering happens after a macroblock's neighbors
// to the right have already been reconstructed, so it must be a separate
// pass from ReconstructRow rather than inlined into it).
func (r *Reconstructor) FilterRow(mbY int, fInfo []FInfo, simple bool, fromMBX, toMBX int) {
	for mbX := fromMBX; mbX < toMBX; mbX++ {
		yOff := mbY*16*r.cacheYStride + mbX*16
		uOff := mbY*8*r.cacheUVStride + mbX*8
		FilterMB(r.cacheY, r.cacheU, r.cacheV, yOff, uOff, uOff, r.cacheYStride, r.cacheUVStride, mbX, mbY, fInfo[mbX], simple)
	}
}

// rotateLeftContext shifts a block's right four columns, saved from the
// macroblock just reconstructed, into the left border the next
// macroblock's predictors will read from. n is 16 for luma, 8 for chroma.
func rotateLeftContext(v View, n int) {
	for j := -1; j < n; j++ {
		copy(v.Slice(j*BPS-4, j*BPS), v.Slice(j*BPS+n-4, j*BPS+n))
	}
}

func fillRun(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
