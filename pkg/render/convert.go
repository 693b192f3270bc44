package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrConverterMissing is returned when rsvg-convert is not on PATH.
var ErrConverterMissing = errors.New("rsvg-convert not found: install librsvg (brew install librsvg, apt install librsvg2-bin)")

// converter is the external SVG converter. Tests replace it.
var converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "-f", "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert.
// scale multiplies the SVG's intrinsic size (2.0 for high-DPI output).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

func convert(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, ErrConverterMissing
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
