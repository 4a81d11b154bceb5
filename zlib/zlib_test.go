package zlib

import (
	"bytes"
	stdzlib "compress/zlib"
	"testing"
)

func zlibOracle(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := stdzlib.NewWriterLevel(&buf, stdzlib.BestCompression)
	if err != nil {
		t.Fatalf("NewWriterLevel: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("zlib framing test payload\n"), 50)
	stream := zlibOracle(t, data)

	out := make([]byte, len(data))
	n, hdr, err := Decode(out, stream)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out[:n], data) {
		t.Fatal("decoded payload mismatch")
	}
	if hdr.WindowBits < 8 || hdr.WindowBits > 15 {
		t.Errorf("hdr.WindowBits = %d, out of RFC 1950 range", hdr.WindowBits)
	}
	if hdr.FDICT {
		t.Error("hdr.FDICT = true, oracle did not set a preset dictionary")
	}
}

func TestInfoRejectsBadHeaderCheck(t *testing.T) {
	_, err := Info([]byte{0x78, 0x00})
	if _, ok := err.(FormatError); !ok {
		t.Fatalf("err = %v (%T), want FormatError", err, err)
	}
}

func TestDecodeRejectsPresetDictionary(t *testing.T) {
	// CMF=0x78 (CM=8, CINFO=7), FLG chosen so FDICT is set and the header
	// checksum still divides by 31.
	stream := []byte{0x78, 0xBB, 0, 0, 0, 1}
	_, _, err := Decode(make([]byte, 16), stream)
	if err == nil {
		t.Fatal("expected an error for a preset-dictionary stream")
	}
}
