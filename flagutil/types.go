package flagutil

import (
	"errors"
	"fmt"
	"strconv"
)

// FormatFlag selects the container framing to expect around a DEFLATE
// stream. This type implements the flag.Value interface.
type FormatFlag struct {
	val string
}

// Format values recognized by FormatFlag.
const (
	FormatAuto = "auto"
	FormatRaw  = "raw"
	FormatGzip = "gzip"
	FormatZlib = "zlib"
)

func (f *FormatFlag) String() string {
	if f.val == "" {
		return FormatAuto
	}
	return f.val
}

func (f *FormatFlag) Set(v string) error {
	switch v {
	case FormatAuto, FormatRaw, FormatGzip, FormatZlib:
		f.val = v
		return nil
	default:
		return fmt.Errorf("unknown format %q, want one of auto, raw, gzip, zlib", v)
	}
}

// WindowBitsFlag parses a string into a DEFLATE window size, which must
// fall within RFC 1950's 8..15 range. This type implements the
// flag.Value interface.
type WindowBitsFlag struct {
	val int
}

func (f *WindowBitsFlag) Bits() int {
	if f.val == 0 {
		return 15
	}
	return f.val
}

func (f *WindowBitsFlag) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("not an integer")
	}
	if n < 8 || n > 15 {
		return errors.New("window bits must be between 8 and 15")
	}
	f.val = n
	return nil
}

func (f *WindowBitsFlag) String() string {
	return fmt.Sprint(f.Bits())
}
