// Package gzip parses gzip (RFC 1952) framing around a DEFLATE payload and
// hands the compressed member off to inflate.Decoder. It does not verify
// the trailing CRC-32 or ISIZE fields; callers that need integrity
// verification must compute and compare those themselves.
package gzip

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/coreos/inflate/inflate"
)

const (
	magic1 = 0x1f
	magic2 = 0x8b

	cmDeflate = 8

	flText    = 1 << 0
	flHCRC    = 1 << 1
	flExtra   = 1 << 2
	flName    = 1 << 3
	flComment = 1 << 4
)

// Header holds the metadata carried in a gzip member's header and
// trailer, independent of the compressed payload itself.
type Header struct {
	ModTime   time.Time
	OS        byte
	Name      string
	Comment   string
	Extra     []byte
	HeaderLen int    // bytes consumed by the header, where the DEFLATE stream begins
	ISIZE     uint32 // uncompressed size mod 2^32, from the member's trailer
	CRC32     uint32 // unverified, from the member's trailer
}

// FormatError reports gzip framing that does not match RFC 1952: a bad
// magic number, an unsupported compression method, or truncated header
// fields.
type FormatError string

func (e FormatError) Error() string { return "gzip: invalid header: " + string(e) }

// Info parses a gzip member's header and trailer without decompressing
// its payload: a quick way to recover the original file name,
// modification time, embedded comment, and expected output size (ISIZE)
// so a caller can size an output buffer before calling Decode.
func Info(src []byte) (Header, error) {
	h, err := readHeader(src)
	if err != nil {
		return h, err
	}
	if len(src) < 8 {
		return h, FormatError("truncated trailer")
	}
	trailer := src[len(src)-8:]
	h.CRC32 = binary.LittleEndian.Uint32(trailer[:4])
	h.ISIZE = binary.LittleEndian.Uint32(trailer[4:8])
	return h, nil
}

func readHeader(src []byte) (Header, error) {
	var h Header
	if len(src) < 10 {
		return h, FormatError("truncated header")
	}
	if src[0] != magic1 || src[1] != magic2 {
		return h, FormatError("bad magic number")
	}
	if src[2] != cmDeflate {
		return h, FormatError("unsupported compression method")
	}
	flg := src[3]
	mtime := binary.LittleEndian.Uint32(src[4:8])
	if mtime != 0 {
		h.ModTime = time.Unix(int64(mtime), 0)
	}
	h.OS = src[9]
	pos := 10

	if flg&flExtra != 0 {
		if len(src) < pos+2 {
			return h, FormatError("truncated extra field length")
		}
		xlen := int(binary.LittleEndian.Uint16(src[pos : pos+2]))
		pos += 2
		if len(src) < pos+xlen {
			return h, FormatError("truncated extra field")
		}
		h.Extra = append([]byte(nil), src[pos:pos+xlen]...)
		pos += xlen
	}
	if flg&flName != 0 {
		end, err := cString(src, pos)
		if err != nil {
			return h, err
		}
		h.Name = string(src[pos:end])
		pos = end + 1
	}
	if flg&flComment != 0 {
		end, err := cString(src, pos)
		if err != nil {
			return h, err
		}
		h.Comment = string(src[pos:end])
		pos = end + 1
	}
	if flg&flHCRC != 0 {
		if len(src) < pos+2 {
			return h, FormatError("truncated header CRC")
		}
		pos += 2
	}
	h.HeaderLen = pos
	return h, nil
}

func cString(src []byte, start int) (int, error) {
	for i := start; i < len(src); i++ {
		if src[i] == 0 {
			return i, nil
		}
	}
	return 0, FormatError("unterminated string field")
}

// Decode inflates the gzip member in src into dst, which must be sized for
// the entire uncompressed payload, and returns the number of bytes
// written along with the member's header. hdr.CRC32/hdr.ISIZE are parsed
// from the trailer but not checked against the decompressed data.
func Decode(dst, src []byte) (n int, hdr Header, err error) {
	hdr, err = readHeader(src)
	if err != nil {
		return 0, hdr, err
	}

	d := inflate.New()
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

	// buf.TotalIn counts every byte the bit reader pulled into its
	// accumulator, including several bytes of look-ahead past the true
	// end of the compressed payload; d.ConsumedInput reports only the
	// bytes the decoded bit stream actually used, which is where the
	// byte-aligned trailer begins.
	trailerStart := hdr.HeaderLen + int(d.ConsumedInput(buf))
	if len(src) < trailerStart+8 {
		return buf.NextOut, hdr, FormatError("truncated trailer")
	}
	hdr.CRC32 = binary.LittleEndian.Uint32(src[trailerStart : trailerStart+4])
	hdr.ISIZE = binary.LittleEndian.Uint32(src[trailerStart+4 : trailerStart+8])
	return buf.NextOut, hdr, nil
}
