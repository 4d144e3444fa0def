// Package webp implements a decoder for the lossy (VP8) subset of the
// WebP image format. It registers itself with the standard library's
// image package so that image.Decode can transparently read WebP files
// whose payload is a VP8 keyframe.
//
// Lossless (VP8L) bitstreams, alpha-plane (ALPH) chunks, and animated
// (ANIM/ANMF) containers are recognized by the container parser but are
// not decoded: Decode returns a *DecodeError with Status
// StatusUnsupportedFeature for any of them.
package webp

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/deepteams/webp/internal/container"
	"github.com/deepteams/webp/internal/frame"
	"github.com/deepteams/webp/internal/lossy"
	"github.com/deepteams/webp/internal/xlog"
)

func init() {
	image.RegisterFormat("webp", "RIFF????WEBP", Decode, DecodeConfig)
}

// Features describes a WebP file's properties, as returned by [GetFeatures].
type Features struct {
	Width        int    // Image width in pixels.
	Height       int    // Image height in pixels.
	HasAlpha     bool   // True if the image contains an alpha channel.
	HasAnimation bool   // True if the image is animated (ANIM chunk present).
	Format       string // Container format: "lossy" (VP8), "lossless" (VP8L), or "extended" (VP8X).
	LoopCount    int    // Animation loop count (0 = infinite). Only meaningful when HasAnimation is true.
	FrameCount   int    // Number of frames (1 for still images).
}

// readAll reads all data from r. If r implements Len() int (e.g.
// *bytes.Reader), a single exact-sized allocation is used instead of
// the repeated doublings that io.ReadAll performs.
func readAll(r io.Reader) ([]byte, error) {
	if lr, ok := r.(interface{ Len() int }); ok {
		n := lr.Len()
		if n > 0 {
			data := make([]byte, n)
			_, err := io.ReadFull(r, data)
			return data, err
		}
	}
	return io.ReadAll(r)
}

// Decode reads a WebP image from r and returns it as an image.Image.
// The returned type is *image.YCbCr (4:2:0); a file with an alpha chunk,
// a lossless bitstream or animation yields a *DecodeError with Status
// StatusUnsupportedFeature instead.
func Decode(r io.Reader) (image.Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("webp: reading data: %w", err)
	}
	return decodeBytes(data)
}

// DecodeConfig returns the color model and dimensions of a WebP image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := readAll(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("webp: reading data: %w", err)
	}

	p, err := container.NewParser(data)
	if err != nil {
		return image.Config{}, bitstreamError(err)
	}

	feat := p.Features()

	cm := color.NRGBAModel
	if frames := p.Frames(); len(frames) > 0 {
		if !frames[0].IsLossless && frames[0].AlphaData == nil {
			cm = color.YCbCrModel
		}
	} else if !feat.HasAlpha {
		cm = color.YCbCrModel
	}

	return image.Config{
		ColorModel: cm,
		Width:      feat.Width,
		Height:     feat.Height,
	}, nil
}

// GetFeatures reads WebP features (dimensions, format, alpha, animation)
// without decoding pixel data. It parses just the RIFF container and chunk
// headers, making it much cheaper than a full [Decode].
func GetFeatures(r io.Reader) (*Features, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("webp: reading data: %w", err)
	}

	p, err := container.NewParser(data)
	if err != nil {
		return nil, bitstreamError(err)
	}

	feat := p.Features()
	f := &Features{
		Width:        feat.Width,
		Height:       feat.Height,
		HasAlpha:     feat.HasAlpha,
		HasAnimation: feat.HasAnim,
		FrameCount:   len(p.Frames()),
		LoopCount:    feat.LoopCount,
	}

	switch feat.Format {
	case container.FormatVP8:
		f.Format = "lossy"
	case container.FormatVP8L:
		f.Format = "lossless"
	case container.FormatVP8X:
		f.Format = "extended"
	default:
		f.Format = "unknown"
	}

	return f, nil
}

// decodeBytes decodes a complete WebP file from a byte slice.
func decodeBytes(data []byte) (image.Image, error) {
	p, err := container.NewParser(data)
	if err != nil {
		return nil, bitstreamError(err)
	}

	feat := p.Features()
	if feat.HasAnim {
		return nil, unsupportedFeatureError("animated WebP (ANIM/ANMF)")
	}

	frames := p.Frames()
	if len(frames) == 0 {
		return nil, bitstreamError(fmt.Errorf("no image frames found"))
	}

	xlog.L().Infow("decoding webp", "width", feat.Width, "height", feat.Height, "format", feat.Format.String())

	return decodeFrame(frames[0])
}

// decodeFrame decodes a single image frame.
func decodeFrame(fr container.FrameInfo) (image.Image, error) {
	if fr.IsLossless {
		return nil, unsupportedFeatureError("VP8L lossless bitstream")
	}
	if fr.AlphaData != nil {
		return nil, unsupportedFeatureError("ALPH alpha-plane chunk")
	}
	return decodeLossy(fr.Payload)
}

// decodeLossy decodes a VP8 lossy bitstream into an *image.YCbCr — no
// colour-space conversion needed, just a plane copy out of the pooled
// decoder's scratch cache.
func decodeLossy(data []byte) (image.Image, error) {
	dec, width, height, yPlane, yStride, uPlane, vPlane, uvStride, err := lossy.DecodeFrame(data)
	if err != nil {
		return nil, bitstreamError(err)
	}
	defer lossy.ReleaseDecoder(dec)

	return buildYCbCr(width, height, yPlane, yStride, uPlane, vPlane, uvStride), nil
}

// buildYCbCr copies the decoder's Y/U/V cache planes into an image.YCbCr.
// The decoder's slab is returned to the pool after this function, so the
// data must be copied out.
func buildYCbCr(width, height int, yPlane []byte, yStride int, uPlane, vPlane []byte, uvStride int) *image.YCbCr {
	chromaH := (height + 1) / 2

	yLen := height * yStride
	cLen := chromaH * uvStride
	buf := make([]byte, yLen+2*cLen)

	copy(buf[:yLen], yPlane[:yLen])
	copy(buf[yLen:yLen+cLen], uPlane[:cLen])
	copy(buf[yLen+cLen:], vPlane[:cLen])

	return &image.YCbCr{
		Y:              buf[:yLen],
		Cb:             buf[yLen : yLen+cLen],
		Cr:             buf[yLen+cLen:],
		YStride:        yStride,
		CStride:        uvStride,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}
}

// DecodeRGBA decodes a VP8 lossy bitstream to *image.NRGBA: it runs
// [Decode] and converts the resulting YCbCr planes with the fancy chroma
// upsampler — for callers that need packed RGBA output directly (e.g.
// [cmd/webpinfo]'s PNG dump).
func DecodeRGBA(r io.Reader) (*image.NRGBA, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	ycbcr, ok := img.(*image.YCbCr)
	if !ok {
		return img.(*image.NRGBA), nil
	}
	return ycbcrToNRGBA(ycbcr), nil
}

// ycbcrToNRGBA upsamples a 4:2:0 YCbCr image to NRGBA using the fancy
// diamond-kernel upsampler.
func ycbcrToNRGBA(ycbcr *image.YCbCr) *image.NRGBA {
	width := ycbcr.Rect.Dx()
	height := ycbcr.Rect.Dy()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	yRow := func(row int) []byte {
		off := row * ycbcr.YStride
		return ycbcr.Y[off : off+width]
	}
	uRow := func(row int) []byte {
		off := row * ycbcr.CStride
		return ycbcr.Cb[off : off+(width+1)/2]
	}
	vRow := func(row int) []byte {
		off := row * ycbcr.CStride
		return ycbcr.Cr[off : off+(width+1)/2]
	}
	dstRow := func(row int) []byte {
		off := row * img.Stride
		return img.Pix[off : off+width*4]
	}

	// Row 0: mirror chroma (top and bottom chroma rows are both row 0).
	frame.UpsampleLinePair(frame.FormatRGBA,
		yRow(0), nil, uRow(0), vRow(0), uRow(0), vRow(0),
		dstRow(0), nil, width,
	)
	if height == 1 {
		return img
	}

	y := 0
	for y+2 < height {
		chromaTop := y / 2
		chromaBot := chromaTop + 1
		frame.UpsampleLinePair(frame.FormatRGBA,
			yRow(y+1), yRow(y+2),
			uRow(chromaTop), vRow(chromaTop),
			uRow(chromaBot), vRow(chromaBot),
			dstRow(y+1), dstRow(y+2),
			width,
		)
		y += 2
	}

	if height&1 == 0 {
		lastChroma := (height - 1) / 2
		frame.UpsampleLinePair(frame.FormatRGBA,
			yRow(height-1), nil,
			uRow(lastChroma), vRow(lastChroma),
			uRow(lastChroma), vRow(lastChroma),
			dstRow(height-1), nil,
			width,
		)
	}

	return img
}
