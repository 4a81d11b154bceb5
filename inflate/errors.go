package inflate

import (
	"errors"
	"strconv"
)

// ErrShortInput is returned when Inflate runs out of input before reaching
// the end of the final block. It is recoverable: append more bytes to the
// input and call Inflate again with the same Decoder and IOBuffer.
var ErrShortInput = errors.New("inflate: more input required")

// ErrInvalidParameter is returned when Inflate is called with a nil
// Decoder or IOBuffer.
var ErrInvalidParameter = errors.New("inflate: invalid parameter")

// HeaderError reports a rejected block header: a reserved BTYPE, or a
// stored block whose LEN does not match the ones-complement of NLEN.
type HeaderError string

func (e HeaderError) Error() string { return "inflate: header error: " + string(e) }

// CorruptInputError reports malformed DEFLATE content discovered at the
// given bit offset into the stream: an oversubscribed or incomplete
// Huffman code, a code-length repeat at position zero, an HLIT+HDIST
// overrun, a missing end-of-block symbol, an invalid-code table hit, or a
// back-reference distance beyond the output produced so far.
type CorruptInputError struct {
	Offset int64
	Reason string
}

func (e *CorruptInputError) Error() string {
	return "inflate: corrupt input at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Reason
}

// InternalError reports a failure in the decoder itself rather than in the
// input it was given -- for example writing past a caller-supplied output
// buffer that was not sized for the full uncompressed payload.
type InternalError string

func (e InternalError) Error() string { return "inflate: internal error: " + string(e) }
