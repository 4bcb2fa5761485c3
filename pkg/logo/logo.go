package logo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FormatPNG is the format name image.DecodeConfig reports for PNG data
const FormatPNG = "png"

// ErrUnknownFormat is returned when the data matches no registered image format
var ErrUnknownFormat = errors.New("not a recognised image format")

// ErrTooLarge is returned by Verify when the header declares more pixels than allowed
var ErrTooLarge = errors.New("image dimensions exceed the allowed maximum")

// Info describes a decoded logo
type Info struct {
	Format string
	Width  int
	Height int
}

// IsPNG reports whether the logo was encoded as PNG
func (i Info) IsPNG() bool {
	return i.Format == FormatPNG
}

// IsSquare reports whether width equals height
func (i Info) IsSquare() bool {
	return i.Width == i.Height
}

// Fits reports whether both sides are within max pixels
func (i Info) Fits(max int) bool {
	return i.Width <= max && i.Height <= max
}

// DecodeError wraps a failure from the underlying image codec
type DecodeError struct {
	Stage string // "header" or "pixels"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeConfig reads only the image header and reports its format and
// dimensions. Data that no registered codec recognises yields ErrUnknownFormat.
func DecodeConfig(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, ErrUnknownFormat
		}
		return Info{}, &DecodeError{Stage: "header", Err: err}
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Verify decodes the PNG pixel data in full. The header is read again first
// and anything larger than maxSide on either side is refused with
// ErrTooLarge before a pixel buffer is allocated.
func Verify(data []byte, maxSide int) error {
	info, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if !info.IsPNG() {
		return fmt.Errorf("cannot verify %s data as png", info.Format)
	}
	if !info.Fits(maxSide) {
		return ErrTooLarge
	}

	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		return &DecodeError{Stage: "pixels", Err: err}
	}
	return nil
}
