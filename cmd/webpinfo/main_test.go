package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/deepteams/webp"
	"github.com/deepteams/webp/internal/container"
)

func buildVP8Header(width, height int) []byte {
	hdr := make([]byte, 10)
	hdr[0] = 0x10
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

func buildSimpleVP8WebP(width, height int) []byte {
	return wrapRIFF(makeChunk(container.FourCCVP8, buildVP8Header(width, height)))
}

// GetFeatures must be a pure function of its input: parsing the same bytes
// twice should produce byte-for-byte identical Features structs.
func TestGetFeatures_Deterministic(t *testing.T) {
	data := buildSimpleVP8WebP(32, 24)

	first, err := webp.GetFeatures(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	second, err := webp.GetFeatures(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("GetFeatures not deterministic (-first +second):\n%s", diff)
	}
}

func TestDescribeDecodeError_WrapsStatus(t *testing.T) {
	decErr := &webp.DecodeError{Status: webp.StatusBitstreamError, Err: errors.New("truncated")}
	wrapped := describeDecodeError(decErr)
	if wrapped == nil {
		t.Fatal("expected non-nil wrapped error")
	}
	var got *webp.DecodeError
	if !errors.As(wrapped, &got) {
		t.Fatalf("expected wrapped error to unwrap to *webp.DecodeError, got %v", wrapped)
	}
	if got.Status != webp.StatusBitstreamError {
		t.Errorf("status = %v, want StatusBitstreamError", got.Status)
	}
}

func TestRun_MissingInput(t *testing.T) {
	if err := run(nil); err == nil {
		t.Fatal("expected error when no input file is given")
	}
}

func TestRun_NonexistentFile(t *testing.T) {
	if err := run([]string{"does-not-exist.webp"}); err == nil {
		t.Fatal("expected error opening a nonexistent file")
	}
}
