package resizer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

// fakeRunner records every invocation instead of running a program
type fakeRunner struct {
	calls  [][]string
	output []byte
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 200, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestSipsArgs(t *testing.T) {
	got := Args("in.png", 120, 60, "out/120.png")
	assert.Equal(t, []string{"-z", "60", "120", "in.png", "--out", "out/120.png"}, got)
}

func TestSipsResize(t *testing.T) {
	ctx := context.Background()

	t.Run("runs sips with the target size", func(t *testing.T) {
		runner := &fakeRunner{}
		s := &Sips{Runner: runner}

		require.NoError(t, s.Resize(ctx, "ic_launcher.png", 87, 87, "set/87.png"))
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"sips", "-z", "87", "87", "ic_launcher.png", "--out", "set/87.png"}, runner.calls[0])
	})

	t.Run("uses the configured binary path", func(t *testing.T) {
		runner := &fakeRunner{}
		s := &Sips{Runner: runner, Path: "/usr/bin/sips"}

		require.NoError(t, s.Resize(ctx, "a.png", 20, 20, "b.png"))
		assert.Equal(t, "/usr/bin/sips", runner.calls[0][0])
	})

	t.Run("failure carries the tool output", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("Error: Unable to render source"), err: errors.New("exit status 13")}
		s := &Sips{Runner: runner}

		err := s.Resize(ctx, "missing.png", 20, 20, "b.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit status 13")
		assert.Contains(t, err.Error(), "Unable to render source")
	})

	t.Run("rejects non-positive sizes without running", func(t *testing.T) {
		runner := &fakeRunner{}
		s := &Sips{Runner: runner}

		assert.Error(t, s.Resize(ctx, "a.png", 0, 20, "b.png"))
		assert.Empty(t, runner.calls)
	})
}

func TestNativeResize(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 64, 64)

	t.Run("writes a PNG of the requested size", func(t *testing.T) {
		dst := filepath.Join(dir, "20.png")
		require.NoError(t, (&Native{}).Resize(ctx, src, 20, 20, dst))

		f, err := os.Open(dst)
		require.NoError(t, err)
		defer f.Close()
		cfg, format, err := image.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 20, cfg.Width)
		assert.Equal(t, 20, cfg.Height)
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		dst := filepath.Join(dir, "40.png")
		require.NoError(t, os.WriteFile(dst, []byte("stale content that is not a png"), 0644))

		require.NoError(t, (&Native{Scaler: draw.ApproxBiLinear}).Resize(ctx, src, 40, 40, dst))

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Width)
	})

	t.Run("upscales a small source", func(t *testing.T) {
		dst := filepath.Join(dir, "128.png")
		require.NoError(t, (&Native{}).Resize(ctx, src, 128, 128, dst))
	})

	t.Run("missing source fails", func(t *testing.T) {
		err := (&Native{}).Resize(ctx, filepath.Join(dir, "nope.png"), 20, 20, filepath.Join(dir, "x.png"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("undecodable source fails", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.png")
		require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
		assert.Error(t, (&Native{}).Resize(ctx, bad, 20, 20, filepath.Join(dir, "y.png")))
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, (&Native{}).Resize(cctx, src, 20, 20, filepath.Join(dir, "z.png")), context.Canceled)
	})
}

func TestNew(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	tests := []struct {
		name     string
		kind     Kind
		hasSips  bool
		wantName string
		wantErr  bool
	}{
		{"explicit sips", KindSips, false, "sips", false},
		{"explicit native", KindNative, true, "native", false},
		{"auto with sips", KindAuto, true, "sips", false},
		{"auto without sips", KindAuto, false, "native", false},
		{"empty means auto", "", false, "native", false},
		{"unknown", "imagemagick", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath = func(file string) (string, error) {
				if tt.hasSips {
					return "/usr/bin/" + file, nil
				}
				return "", errors.New("not found")
			}

			r, err := New(tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, Name(r))
		})
	}
}
