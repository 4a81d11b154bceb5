// Command inflate decompresses a raw DEFLATE, gzip or zlib stream from a
// file or stdin. It is a thin driver over the inflate/gzip/zlib packages;
// none of its buffer-growth or format-sniffing logic is part of the core
// decoder itself.
package main

import (
	"flag"
	"io"
	"io/ioutil"
	"os"

	"github.com/coreos/inflate/capnslog"
	"github.com/coreos/inflate/cliconfig"
	"github.com/coreos/inflate/flagutil"
	"github.com/coreos/inflate/gzip"
	"github.com/coreos/inflate/inflate"
	"github.com/coreos/inflate/zlib"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/inflate", "inflate")

func main() {
	fs := flag.NewFlagSet("inflate", flag.ExitOnError)
	var format flagutil.FormatFlag
	var windowBits flagutil.WindowBitsFlag
	fs.Var(&format, "format", "container format: auto, raw, gzip or zlib")
	fs.Var(&windowBits, "window-bits", "window size in bits (8-15), raw format only")
	config := fs.String("config", "", "YAML file pre-seeding flags not given on the command line")
	out := fs.String("o", "", "output file; defaults to stdout")
	journald := fs.Bool("journald", false, "send log output to the systemd journal instead of stderr")
	logLevel := fs.String("log-level", "INFO", "capnslog level for the inflate repo")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *config != "" {
		raw, err := ioutil.ReadFile(*config)
		if err != nil {
			plog.Fatalf("reading config: %v", err)
		}
		if err := cliconfig.SetFlagsFromYaml(fs, raw); err != nil {
			plog.Fatalf("applying config: %v", err)
		}
	}

	level, err := capnslog.ParseLevel(*logLevel)
	if err != nil {
		plog.Fatalf("parsing -log-level: %v", err)
	}
	repoLog := capnslog.MustRepoLogger("github.com/coreos/inflate")
	repoLog.SetGlobalLogLevel(level)
	if *journald {
		jf, err := capnslog.NewJournaldFormatter()
		if err != nil {
			plog.Fatalf("journald unavailable: %v", err)
		}
		capnslog.SetFormatter(jf)
	} else {
		capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))
	}

	args := fs.Args()
	var src []byte
	if len(args) > 0 {
		src, err = ioutil.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		plog.Fatalf("reading input: %v", err)
	}

	dst, err := decode(format.String(), windowBits.Bits(), src)
	if err != nil {
		plog.Fatalf("decode: %v", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			plog.Fatalf("creating output file: %v", err)
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(dst); err != nil {
		plog.Fatalf("writing output: %v", err)
	}
	plog.Infof("decoded %d bytes to %d bytes", len(src), len(dst))
}

// decode detects the container format if requested and inflates src. A
// gzip member carries its uncompressed size (ISIZE) in its trailer, so
// that is read via gzip.Info and used to size the output buffer exactly.
// Raw DEFLATE and zlib streams carry no such hint, so those paths grow
// the output buffer geometrically until decoding succeeds -- the
// non-streaming core requires a correctly sized buffer up front, and
// retrying with a larger allocation is the CLI's problem to solve, not
// the core's.
func decode(format string, windowBits int, src []byte) ([]byte, error) {
	if format == flagutil.FormatAuto {
		format = sniff(src)
	}

	if format == flagutil.FormatGzip {
		hdr, err := gzip.Info(src)
		if err != nil {
			return nil, err
		}
		dst := make([]byte, hdr.ISIZE)
		n, _, err := gzip.Decode(dst, src)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	}

	size := len(src)*4 + 64
	const maxSize = 1 << 30
	for {
		dst := make([]byte, size)
		var n int
		var err error
		if format == flagutil.FormatZlib {
			n, _, err = zlib.Decode(dst, src)
		} else {
			n, err = decodeRaw(dst, src, windowBits)
		}
		if err == nil {
			return dst[:n], nil
		}
		if _, ok := err.(inflate.InternalError); ok && size < maxSize {
			size *= 2
			continue
		}
		return nil, err
	}
}

func decodeRaw(dst, src []byte, windowBits int) (int, error) {
	d := inflate.New()
	d.SetWindowBits(windowBits)
	buf := &inflate.IOBuffer{In: src, Out: dst}
	_, err := d.Inflate(buf, true)
	if err == io.EOF {
		return buf.NextOut, nil
	}
	return buf.NextOut, err
}

// sniff guesses a container format from magic bytes, falling back to raw
// DEFLATE when nothing matches.
func sniff(src []byte) string {
	switch {
	case len(src) >= 2 && src[0] == 0x1f && src[1] == 0x8b:
		return flagutil.FormatGzip
	case len(src) >= 2 && src[0]&0x0F == 8 && (int(src[0])<<8|int(src[1]))%31 == 0:
		return flagutil.FormatZlib
	default:
		return flagutil.FormatRaw
	}
}
