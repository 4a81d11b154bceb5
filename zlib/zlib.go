// Package zlib parses zlib (RFC 1950) framing around a DEFLATE payload.
// A preset dictionary ID, if present, is parsed and reported by Info but
// never applied: Decode rejects such streams with a FormatError without
// inflating them.
package zlib

import (
	"encoding/binary"
	"io"

	"github.com/coreos/inflate/inflate"
)

const (
	cmDeflate = 8

	flgDictMask = 0x20
	headerCheck = 31
)

// Header holds the metadata carried in a zlib stream's two-byte header.
type Header struct {
	WindowBits int
	FDICT      bool
	DictID     uint32
	HeaderLen  int
}

// FormatError reports zlib framing that does not match RFC 1950.
type FormatError string

func (e FormatError) Error() string { return "zlib: invalid header: " + string(e) }

// Info parses a zlib stream's header without decompressing its payload.
func Info(src []byte) (Header, error) {
	return readHeader(src)
}

func readHeader(src []byte) (Header, error) {
	var h Header
	if len(src) < 2 {
		return h, FormatError("truncated header")
	}
	cmf, flg := src[0], src[1]
	if cmf&0x0F != cmDeflate {
		return h, FormatError("unsupported compression method")
	}
	if (int(cmf)<<8|int(flg))%headerCheck != 0 {
		return h, FormatError("header checksum mismatch")
	}
	h.WindowBits = int(cmf>>4) + 8
	h.HeaderLen = 2
	if flg&flgDictMask != 0 {
		if len(src) < 6 {
			return h, FormatError("truncated dictionary id")
		}
		h.FDICT = true
		h.DictID = binary.BigEndian.Uint32(src[2:6])
		h.HeaderLen = 6
	}
	return h, nil
}

// Decode inflates the zlib stream in src into dst, which must be sized
// for the entire uncompressed payload, and returns the number of bytes
// written along with the parsed header. The trailing Adler-32 checksum is
// neither parsed for its value nor verified.
func Decode(dst, src []byte) (n int, hdr Header, err error) {
	hdr, err = readHeader(src)
	if err != nil {
		return 0, hdr, err
	}
	if hdr.FDICT {
		return 0, hdr, FormatError("preset dictionaries are not supported")
	}

	d := inflate.New()
	d.SetWindowBits(hdr.WindowBits)
	buf := &inflate.IOBuffer{In: src[hdr.HeaderLen:], Out: dst}
	for {
		_, err = d.Inflate(buf, true)
		if err == nil {
			continue
		}
		break
	}
	if err != io.EOF {
		return buf.NextOut, hdr, err
	}
	return buf.NextOut, hdr, nil
}
