package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// ErrConverterMissing is returned when rsvg-convert is not on PATH.
var ErrConverterMissing = errors.New("rsvg-convert not found")

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// HasConverter reports whether PDF and PNG export is available.
func HasConverter() bool {
	_, err := exec.LookPath("rsvg-convert")
	return err == nil
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !HasConverter() {
		return nil, fmt.Errorf("%w: %s export requires librsvg (brew install librsvg, apt install librsvg2-bin)", ErrConverterMissing, format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
