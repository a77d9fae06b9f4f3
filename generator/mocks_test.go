package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// resizeCall is one recorded Resize invocation
type resizeCall struct {
	source      string
	width       int
	height      int
	destination string
}

// fakeResizer records calls and writes a placeholder file instead of scaling
type fakeResizer struct {
	calls  []resizeCall
	failOn string
	// content written to each destination; defaults to the size label
	content func(width, height int) []byte
}

func (f *fakeResizer) Resize(ctx context.Context, source string, width, height int, destination string) error {
	f.calls = append(f.calls, resizeCall{source, width, height, destination})

	if f.failOn != "" && filepath.Base(destination) == f.failOn {
		return errors.New("exit status 1")
	}

	data := []byte(fmt.Sprintf("%dx%d", width, height))
	if f.content != nil {
		data = f.content(width, height)
	}
	return os.WriteFile(destination, data, 0644)
}

// writeSourcePNG writes a blank w x h PNG to path
func writeSourcePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create source image: %v", err)
	}
	defer f.Close()
	writePNGTo(t, f, w, h)
}

func writePNGTo(t *testing.T, w io.Writer, width, height int) {
	t.Helper()
	if err := png.Encode(w, image.NewNRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
}
