package gzip

import (
	"bytes"
	stdgzip "compress/gzip"
	"io"
	"testing"
	"time"
)

func gzipOracle(t *testing.T, name string, mtime time.Time, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := stdgzip.NewWriterLevel(&buf, stdgzip.BestCompression)
	if err != nil {
		t.Fatalf("NewWriterLevel: %v", err)
	}
	w.Name = name
	w.ModTime = mtime
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("gzip framing test payload\n"), 50)
	mtime := time.Unix(1700000000, 0)
	member := gzipOracle(t, "payload.txt", mtime, data)

	out := make([]byte, len(data))
	n, hdr, err := Decode(out, member)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out[:n], data) {
		t.Fatal("decoded payload mismatch")
	}
	if hdr.Name != "payload.txt" {
		t.Errorf("hdr.Name = %q, want %q", hdr.Name, "payload.txt")
	}
	if !hdr.ModTime.Equal(mtime) {
		t.Errorf("hdr.ModTime = %v, want %v", hdr.ModTime, mtime)
	}
	if int(hdr.ISIZE) != len(data) {
		t.Errorf("hdr.ISIZE = %d, want %d", hdr.ISIZE, len(data))
	}
}

func TestInfoDoesNotRequireFullPayload(t *testing.T) {
	data := []byte("small")
	member := gzipOracle(t, "x", time.Time{}, data)

	// Reference round-trip via the standard library, to confirm the member
	// itself is well formed.
	r, err := stdgzip.NewReader(bytes.NewReader(member))
	if err != nil {
		t.Fatalf("stdgzip.NewReader: %v", err)
	}
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	hdr, err := Info(member)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if hdr.Name != "x" {
		t.Errorf("hdr.Name = %q, want %q", hdr.Name, "x")
	}
	if hdr.HeaderLen <= 0 || hdr.HeaderLen >= len(member) {
		t.Errorf("hdr.HeaderLen = %d out of range for member of length %d", hdr.HeaderLen, len(member))
	}
	if int(hdr.ISIZE) != len(data) {
		t.Errorf("hdr.ISIZE = %d, want %d", hdr.ISIZE, len(data))
	}
}

func TestInfoRejectsBadMagic(t *testing.T) {
	_, err := Info([]byte{0x00, 0x00, 0x08, 0x00, 0, 0, 0, 0, 0, 0})
	if _, ok := err.(FormatError); !ok {
		t.Fatalf("err = %v (%T), want FormatError", err, err)
	}
}
