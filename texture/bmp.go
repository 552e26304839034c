// Package texture loads surface textures and uploads them for the shader's
// texture array. Texture indices handed out by a Library are the values
// stored in scene.Color texture channels.
package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Texture errors.
var (
	// ErrNotBMP is returned when the input lacks the "BM" signature.
	ErrNotBMP = errors.New("texture: not a BMP file")

	// ErrUnsupportedDepth is returned for anything but 24 bits per pixel.
	ErrUnsupportedDepth = errors.New("texture: only 24-bit BMP is supported")

	// ErrEmptyImage is returned for images without pixels.
	ErrEmptyImage = errors.New("texture: empty image")
)

const bmpHeaderSize = 54

// DecodeBMP decodes an uncompressed 24-bit BMP into top-down RGBA.
func DecodeBMP(r io.Reader) (*image.RGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("texture: read: %w", err)
	}
	if len(data) < bmpHeaderSize || data[0] != 'B' || data[1] != 'M' {
		return nil, ErrNotBMP
	}
	if bpp := binary.LittleEndian.Uint16(data[28:30]); bpp != 24 {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedDepth, bpp)
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return toRGBA(img)
}

// Load decodes the BMP file at path.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()
	img, err := DecodeBMP(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// toRGBA returns img as a tightly packed RGBA image anchored at (0, 0).
func toRGBA(img image.Image) (*image.RGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}
