package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

const maxSample16 = 0xFFFF

// LoadImage loads an image from the given file path, auto-detecting the
// format from its content. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadImageFromBytes loads an image from a byte slice, auto-detecting the format.
func LoadImageFromBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("image: decode: %w", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// FromStdImage converts a standard library image into a straight-alpha
// float buffer with origin (0, 0) and samples in [0, 1].
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	nrgba, ok := img.(*image.NRGBA64)
	if !ok {
		nrgba = image.NewNRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	const scale = 1.0 / maxSample16
	for y := range buf.height {
		src := nrgba.Pix[y*nrgba.Stride:]
		dst := buf.Row(0, y, buf.width)
		for x := range buf.width {
			for c := range Channels {
				s := uint16(src[x*8+c*2])<<8 | uint16(src[x*8+c*2+1])
				dst[x*Channels+c] = float32(s) * scale
			}
		}
	}
	return buf, nil
}

// ToStdImage converts the buffer to a 16-bit straight-alpha image.
// Samples are clamped to [0, 1]; NaN maps to 0.
func (b *ImageBuf) ToStdImage() *image.NRGBA64 {
	out := image.NewNRGBA64(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		row := b.data[y*b.Stride() : (y+1)*b.Stride()]
		dst := out.Pix[y*out.Stride:]
		for i, v := range row {
			if !(v > 0) {
				v = 0
			} else if v > 1 {
				v = 1
			}
			s := uint16(v*maxSample16 + 0.5)
			dst[i*2] = byte(s >> 8)
			dst[i*2+1] = byte(s)
		}
	}
	return out
}

// SavePNG saves the buffer as a 16-bit PNG file.
func (b *ImageBuf) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// EncodePNG encodes the buffer as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes the buffer as JPEG with the given quality (1-100).
func (b *ImageBuf) EncodeJPEG(w io.Writer, quality int) error {
	quality = max(1, min(quality, 100))
	if err := jpeg.Encode(w, b.ToStdImage(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}
