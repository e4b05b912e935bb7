package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"os"

	// Register decoders for the formats skybox faces ship in.
	_ "image/jpeg"
	_ "image/png"
)

// TextureData holds decoded RGBA pixel data ready for GPU upload.
type TextureData struct {
	// Pixels is raw RGBA data, 4 bytes per pixel, row-major order.
	Pixels []byte

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32
}

// DecodeTexture decodes PNG or JPEG bytes to raw RGBA pixel data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - data: the encoded image bytes
//
// Returns:
//   - TextureData: decoded pixels and dimensions
//   - error: error if decoding fails
func DecodeTexture(data []byte) (TextureData, error) {
	if len(data) == 0 {
		return TextureData{}, fmt.Errorf("texture has no data")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return imageToTextureData(img), nil
}

// DecodeTextureFile loads and decodes a PNG or JPEG file to raw RGBA pixel data.
//
// Parameters:
//   - path: path to the image file on disk
//
// Returns:
//   - TextureData: decoded pixels and dimensions
//   - error: error if the file cannot be opened or decoded
func DecodeTextureFile(path string) (TextureData, error) {
	file, err := os.Open(path)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return TextureData{}, fmt.Errorf("failed to decode texture file %s: %w", path, err)
	}
	return imageToTextureData(img), nil
}

// imageToTextureData converts any decoded image to tightly packed RGBA bytes.
func imageToTextureData(img image.Image) TextureData {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return TextureData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
