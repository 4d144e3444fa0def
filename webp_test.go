package webp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/deepteams/webp/internal/container"
)

// buildVP8Header returns a minimal 10-byte VP8 keyframe header (no
// coefficient partitions) advertising the given dimensions.
func buildVP8Header(width, height int) []byte {
	hdr := make([]byte, 10)
	hdr[0] = 0x10 // keyframe, show_frame=1, version=0
	hdr[3] = 0x9d
	hdr[4] = 0x01
	hdr[5] = 0x2a
	binary.LittleEndian.PutUint16(hdr[6:8], uint16(width))
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(height))
	return hdr
}

func makeChunk(fourcc uint32, payload []byte) []byte {
	size := uint32(len(payload))
	out := make([]byte, container.ChunkHeaderSize+container.PaddedSize(size))
	binary.LittleEndian.PutUint32(out[0:4], fourcc)
	binary.LittleEndian.PutUint32(out[4:8], size)
	copy(out[container.ChunkHeaderSize:], payload)
	return out
}

func wrapRIFF(chunks ...[]byte) []byte {
	var payload []byte
	for _, c := range chunks {
		payload = append(payload, c...)
	}
	out := make([]byte, container.RIFFHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:4], container.FourCCRIFF)
	binary.LittleEndian.PutUint32(out[4:8], uint32(4+len(payload)))
	binary.LittleEndian.PutUint32(out[8:12], container.FourCCWEBP)
	copy(out[container.RIFFHeaderSize:], payload)
	return out
}

// buildSimpleVP8WebP builds a non-extended WebP file with a lone VP8 chunk.
// The bitstream only carries a valid 10-byte frame header, not real
// entropy-coded partitions, so it is only useful for header-level tests
// (GetFeatures, DecodeConfig) — a full Decode of it fails with a bitstream
// error, which TestDecode_LossyTruncatedPartition exercises directly.
func buildSimpleVP8WebP(width, height int) []byte {
	return wrapRIFF(makeChunk(container.FourCCVP8, buildVP8Header(width, height)))
}

func buildSimpleVP8LWebP(width, height int, alpha bool) []byte {
	vp8l := make([]byte, 5)
	vp8l[0] = container.VP8LMagicByte
	bits := uint32(width-1) | (uint32(height-1) << 14)
	if alpha {
		bits |= 1 << 28
	}
	binary.LittleEndian.PutUint32(vp8l[1:5], bits)
	return wrapRIFF(makeChunk(container.FourCCVP8L, vp8l))
}

func buildAnimatedVP8XWebP(width, height int) []byte {
	vp8x := make([]byte, container.VP8XChunkSize)
	vp8x[0] = byte(container.AnimationFlag)
	vp8x[4] = byte(width - 1)
	vp8x[5] = byte((width - 1) >> 8)
	vp8x[6] = byte((width - 1) >> 16)
	vp8x[7] = byte(height - 1)
	vp8x[8] = byte((height - 1) >> 8)
	vp8x[9] = byte((height - 1) >> 16)

	anim := make([]byte, container.ANIMChunkSize)
	binary.LittleEndian.PutUint32(anim[0:4], 0xFFFFFFFF)
	binary.LittleEndian.PutUint16(anim[4:6], 0)

	anmfHeader := make([]byte, container.ANMFChunkSize)
	anmfHeader[6] = byte(width - 1)
	anmfHeader[7] = byte((width - 1) >> 8)
	anmfHeader[8] = byte((width - 1) >> 16)
	anmfHeader[9] = byte(height - 1)
	anmfHeader[10] = byte((height - 1) >> 8)
	anmfHeader[11] = byte((height - 1) >> 16)
	anmf := append(anmfHeader, makeChunk(container.FourCCVP8, buildVP8Header(width, height))...)

	return wrapRIFF(
		makeChunk(container.FourCCVP8X, vp8x),
		makeChunk(container.FourCCANIM, anim),
		makeChunk(container.FourCCANMF, anmf),
	)
}

func buildVP8XWithAlphaWebP(width, height int) []byte {
	vp8x := make([]byte, container.VP8XChunkSize)
	vp8x[0] = byte(container.AlphaFlag)
	vp8x[4] = byte(width - 1)
	vp8x[5] = byte((width - 1) >> 8)
	vp8x[6] = byte((width - 1) >> 16)
	vp8x[7] = byte(height - 1)
	vp8x[8] = byte((height - 1) >> 8)
	vp8x[9] = byte((height - 1) >> 16)

	alph := make([]byte, 4) // minimal placeholder alpha payload
	return wrapRIFF(
		makeChunk(container.FourCCVP8X, vp8x),
		makeChunk(container.FourCCALPH, alph),
		makeChunk(container.FourCCVP8, buildVP8Header(width, height)),
	)
}

// --- GetFeatures tests ---

func TestGetFeatures_Lossy(t *testing.T) {
	feat, err := GetFeatures(bytes.NewReader(buildSimpleVP8WebP(64, 48)))
	if err != nil {
		t.Fatal(err)
	}
	if feat.Width != 64 || feat.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", feat.Width, feat.Height)
	}
	if feat.Format != "lossy" {
		t.Errorf("format = %q, want %q", feat.Format, "lossy")
	}
	if feat.HasAnimation {
		t.Error("unexpected animation flag")
	}
}

func TestGetFeatures_Lossless(t *testing.T) {
	feat, err := GetFeatures(bytes.NewReader(buildSimpleVP8LWebP(4, 4, true)))
	if err != nil {
		t.Fatal(err)
	}
	if feat.Width != 4 || feat.Height != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", feat.Width, feat.Height)
	}
	if feat.Format != "lossless" {
		t.Errorf("format = %q, want %q", feat.Format, "lossless")
	}
	if !feat.HasAlpha {
		t.Error("expected HasAlpha")
	}
}

func TestGetFeatures_Animated(t *testing.T) {
	feat, err := GetFeatures(bytes.NewReader(buildAnimatedVP8XWebP(16, 16)))
	if err != nil {
		t.Fatal(err)
	}
	if !feat.HasAnimation {
		t.Error("expected HasAnimation")
	}
	if feat.FrameCount != 1 {
		t.Errorf("frame count = %d, want 1", feat.FrameCount)
	}
}

// --- DecodeConfig tests ---

func TestDecodeConfig_Lossy(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewReader(buildSimpleVP8WebP(16, 16)))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("config dimensions = %dx%d, want 16x16", cfg.Width, cfg.Height)
	}
	if cfg.ColorModel != color.YCbCrModel {
		t.Errorf("color model = %v, want YCbCrModel for lossy without alpha", cfg.ColorModel)
	}
}

func TestDecodeConfig_Lossless(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewReader(buildSimpleVP8LWebP(8, 8, true)))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ColorModel != color.NRGBAModel {
		t.Errorf("color model = %v, want NRGBAModel for lossless", cfg.ColorModel)
	}
}

func TestDecodeConfig_InvalidData(t *testing.T) {
	_, err := DecodeConfig(bytes.NewReader([]byte{0, 1, 2, 3}))
	if err == nil {
		t.Fatal("expected error for invalid data")
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Status != StatusBitstreamError {
		t.Errorf("err = %v, want *DecodeError{Status: StatusBitstreamError}", err)
	}
}

// --- Decode error paths ---

func TestDecode_InvalidData(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a webp file")))
	if err == nil {
		t.Fatal("expected error for invalid data")
	}
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestDecode_LossyTruncatedPartition(t *testing.T) {
	_, err := Decode(bytes.NewReader(buildSimpleVP8WebP(16, 16)))
	if err == nil {
		t.Fatal("expected error decoding a header-only VP8 payload")
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Status != StatusBitstreamError {
		t.Errorf("err = %v, want *DecodeError{Status: StatusBitstreamError}", err)
	}
}

func TestDecode_LosslessUnsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader(buildSimpleVP8LWebP(4, 4, false)))
	if !errors.Is(err, ErrUnsupportedFeature) {
		t.Errorf("err = %v, want errors.Is(err, ErrUnsupportedFeature)", err)
	}
}

func TestDecode_AnimatedUnsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader(buildAnimatedVP8XWebP(16, 16)))
	if !errors.Is(err, ErrUnsupportedFeature) {
		t.Errorf("err = %v, want errors.Is(err, ErrUnsupportedFeature)", err)
	}
}

func TestDecode_AlphaUnsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader(buildVP8XWithAlphaWebP(8, 8)))
	if !errors.Is(err, ErrUnsupportedFeature) {
		t.Errorf("err = %v, want errors.Is(err, ErrUnsupportedFeature)", err)
	}
}

// --- image.RegisterFormat integration ---

func TestImageDecodeConfigFormat(t *testing.T) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(buildSimpleVP8WebP(32, 24)))
	if err != nil {
		t.Fatal(err)
	}
	if format != "webp" {
		t.Errorf("format = %q, want %q", format, "webp")
	}
	if cfg.Width != 32 || cfg.Height != 24 {
		t.Errorf("config = %dx%d, want 32x24", cfg.Width, cfg.Height)
	}
}

// --- DecodeError ---

func TestDecodeError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &DecodeError{Status: StatusBitstreamError, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestVP8StatusCode_String(t *testing.T) {
	cases := map[VP8StatusCode]string{
		StatusOK:                "OK",
		StatusUnsupportedFeature: "UNSUPPORTED_FEATURE",
		StatusBitstreamError:    "BITSTREAM_ERROR",
		VP8StatusCode(99):        "UNKNOWN",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
