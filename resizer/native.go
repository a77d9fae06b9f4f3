package resizer

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Native resizes in-process with golang.org/x/image/draw.
// Reads PNG, JPEG and GIF; always writes PNG.
type Native struct {
	// Scaler used for interpolation; CatmullRom when nil
	Scaler draw.Scaler
}

// Resize decodes source, scales it to width x height and writes a PNG
func (n *Native) Resize(ctx context.Context, source string, width, height int, destination string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid target size %dx%d", width, height)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := decodeFile(source)
	if err != nil {
		return err
	}

	scaler := n.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destination, err)
	}

	if err := png.Encode(out, dst); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode %s: %w", destination, err)
	}
	return out.Close()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
