package webp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/deepteams/webp/internal/container"
)

// --- S1: Extreme dimensions in the container header ---

func TestEdge_Dimensions(t *testing.T) {
	cases := []struct{ w, h int }{
		{1, 1}, {1, 16384}, {16384, 1}, {16384, 16384},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%dx%d", c.w, c.h), func(t *testing.T) {
			feat, err := GetFeatures(bytes.NewReader(buildSimpleVP8WebP(c.w, c.h)))
			if err != nil {
				t.Fatalf("GetFeatures: %v", err)
			}
			if feat.Width != c.w || feat.Height != c.h {
				t.Errorf("dimensions = %dx%d, want %dx%d", feat.Width, feat.Height, c.w, c.h)
			}
		})
	}
}

func TestEdge_ZeroDimensions(t *testing.T) {
	_, err := GetFeatures(bytes.NewReader(buildSimpleVP8WebP(0, 0)))
	if err == nil {
		t.Fatal("expected error for zero-dimension VP8 header")
	}
}

// --- S2: Truncated and malformed RIFF structure ---

func TestEdge_TruncatedAtEveryLength(t *testing.T) {
	full := buildSimpleVP8WebP(16, 16)
	for n := 0; n < len(full); n++ {
		assertNoPanic(t, fmt.Sprintf("len=%d", n), func() {
			Decode(bytes.NewReader(full[:n])) //nolint:errcheck
		})
	}
}

func TestEdge_TruncatedVP8X(t *testing.T) {
	full := buildAnimatedVP8XWebP(16, 16)
	for n := 0; n < len(full); n++ {
		assertNoPanic(t, fmt.Sprintf("len=%d", n), func() {
			GetFeatures(bytes.NewReader(full[:n])) //nolint:errcheck
		})
	}
}

func TestEdge_BadRIFFSize(t *testing.T) {
	data := buildSimpleVP8WebP(16, 16)
	// Corrupt the RIFF file-size field to something absurd.
	binary.LittleEndian.PutUint32(data[4:8], 0xFFFFFFFF)
	_, err := Decode(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for bogus RIFF size")
	}
}

func TestEdge_OddPayloadPadding(t *testing.T) {
	// VP8 payload with odd length must be padded to even per RIFF rules;
	// a chunk claiming an odd size one byte short of the buffer should
	// fail cleanly rather than read out of bounds.
	vp8 := buildVP8Header(16, 16)
	vp8 = append(vp8, 0x00) // 11 bytes, odd
	chunk := make([]byte, container.ChunkHeaderSize+11)
	binary.LittleEndian.PutUint32(chunk[0:4], container.FourCCVP8)
	binary.LittleEndian.PutUint32(chunk[4:8], 11)
	copy(chunk[8:], vp8)
	// Deliberately omit the trailing pad byte riff.Reader expects.
	data := wrapRIFF(chunk)
	assertNoPanic(t, "odd-padding", func() {
		Decode(bytes.NewReader(data)) //nolint:errcheck
	})
}

func TestEdge_UnknownFourCCAtTop(t *testing.T) {
	junk := make([]byte, container.RIFFHeaderSize+8)
	binary.LittleEndian.PutUint32(junk[0:4], container.FourCCRIFF)
	binary.LittleEndian.PutUint32(junk[4:8], 12)
	binary.LittleEndian.PutUint32(junk[8:12], container.FourCCWEBP)
	binary.LittleEndian.PutUint32(junk[12:16], container.FourCC('J', 'U', 'N', 'K'))
	_, err := Decode(bytes.NewReader(junk))
	if err == nil {
		t.Fatal("expected error for unrecognized first chunk")
	}
}

func TestEdge_DuplicateVP8X(t *testing.T) {
	vp8x := make([]byte, container.VP8XChunkSize)
	chunk1 := makeChunk(container.FourCCVP8X, vp8x)
	chunk2 := makeChunk(container.FourCCVP8X, vp8x)
	data := wrapRIFF(chunk1, chunk2)
	_, err := GetFeatures(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for duplicate VP8X chunk")
	}
}

// --- S3: Unsupported-feature classification ---

func TestEdge_DecodeError_StatusForEveryUnsupportedPath(t *testing.T) {
	cases := map[string][]byte{
		"lossless": buildSimpleVP8LWebP(4, 4, false),
		"animated": buildAnimatedVP8XWebP(8, 8),
		"alpha":    buildVP8XWithAlphaWebP(4, 4),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(data))
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("err = %v, want *DecodeError", err)
			}
			if decErr.Status != StatusUnsupportedFeature {
				t.Errorf("status = %v, want StatusUnsupportedFeature", decErr.Status)
			}
		})
	}
}

// --- S4: Concurrent decoding (the pooled decoder in internal/lossy must
// not leak state across goroutines). ---

func TestEdge_ConcurrentDecode(t *testing.T) {
	data := buildSimpleVP8WebP(16, 16) // fails deterministically, which is fine here
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Decode(bytes.NewReader(data)) //nolint:errcheck
		}()
	}
	wg.Wait()
}

func TestEdge_ConcurrentGetFeatures(t *testing.T) {
	data := buildAnimatedVP8XWebP(32, 32)
	var wg sync.WaitGroup
	results := make([]*Features, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := GetFeatures(bytes.NewReader(data))
			if err != nil {
				t.Errorf("goroutine %d: %v", i, err)
				return
			}
			results[i] = f
		}(i)
	}
	wg.Wait()
	for i, f := range results {
		if f == nil || f.Width != 32 || f.Height != 32 {
			t.Errorf("goroutine %d: got %+v, want 32x32", i, f)
		}
	}
}

// --- helpers ---

func assertNoPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("%s panicked: %v", name, r)
		}
	}()
	fn()
}
