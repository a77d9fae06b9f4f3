package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"appiconset/catalog"
	"appiconset/resizer"
)

// DefaultManifestName is the file Xcode reads inside an .appiconset
const DefaultManifestName = "Contents.json"

// SourceCheck controls how the source image is inspected before resizing
type SourceCheck string

const (
	// SourceCheckWarn logs non-square or undersized sources and continues
	SourceCheckWarn SourceCheck = "warn"
	// SourceCheckStrict fails on non-square, undersized or undecodable sources
	SourceCheckStrict SourceCheck = "strict"
	// SourceCheckOff only requires the source to exist
	SourceCheckOff SourceCheck = "off"
)

var (
	ErrSourceNotSquare = errors.New("source image is not square")
	ErrSourceTooSmall  = errors.New("source image is smaller than the largest icon")
)

// ResizeError reports the icon whose resize failed
type ResizeError struct {
	Icon catalog.IconSpec
	Err  error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("failed to generate %s (%dx%d): %v", e.Icon.Filename, e.Icon.Size, e.Icon.Size, e.Err)
}

func (e *ResizeError) Unwrap() error {
	return e.Err
}

// Options configures a single generator run
type Options struct {
	Source       string
	OutputDir    string
	ManifestName string
	Catalog      catalog.Catalog
	SourceCheck  SourceCheck
}

// Result lists what a successful run wrote
type Result struct {
	Files        []string
	ManifestPath string
}

// Generator turns one source image into an icon set plus Contents.json
type Generator struct {
	opts    Options
	resizer resizer.Resizer
	log     *log.Logger
}

// New creates a generator. A nil logger discards progress output.
func New(opts Options, r resizer.Resizer, logger *log.Logger) (*Generator, error) {
	if opts.Source == "" {
		return nil, fmt.Errorf("source image is required")
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if r == nil {
		return nil, fmt.Errorf("resizer is required")
	}
	if opts.ManifestName == "" {
		opts.ManifestName = DefaultManifestName
	}
	if opts.SourceCheck == "" {
		opts.SourceCheck = SourceCheckWarn
	}
	switch opts.SourceCheck {
	case SourceCheckWarn, SourceCheckStrict, SourceCheckOff:
	default:
		return nil, fmt.Errorf("unknown source check %q", opts.SourceCheck)
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Generator{
		opts:    opts,
		resizer: r,
		log:     logger,
	}, nil
}

// ManifestPath returns where Contents.json is written
func (g *Generator) ManifestPath() string {
	return filepath.Join(g.opts.OutputDir, g.opts.ManifestName)
}

// Run resizes every icon in order and then writes the manifest.
// The first failure aborts the run; no manifest is written in that case.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	g.log.Printf("🚀 Generating icons from %s...", g.opts.Source)

	if err := os.MkdirAll(g.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := g.checkSource(); err != nil {
		return nil, err
	}

	result := &Result{Files: make([]string, 0, len(g.opts.Catalog.Icons))}
	for _, icon := range g.opts.Catalog.Icons {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled before %s: %w", icon.Filename, err)
		}

		dest := filepath.Join(g.opts.OutputDir, icon.Filename)
		g.log.Printf("  Processing %s (%dx%d)...", icon.Filename, icon.Size, icon.Size)

		if err := g.resizer.Resize(ctx, g.opts.Source, icon.Size, icon.Size, dest); err != nil {
			return nil, &ResizeError{Icon: icon, Err: err}
		}
		result.Files = append(result.Files, dest)
	}

	data, err := g.opts.Catalog.Manifest().Encode()
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.ManifestPath(), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	result.ManifestPath = g.ManifestPath()

	g.log.Printf("✅ Done! Wrote %d icons and %s", len(result.Files), g.opts.ManifestName)
	return result, nil
}

// checkSource applies the SourceCheck policy to the source image
func (g *Generator) checkSource() error {
	f, err := os.Open(g.opts.Source)
	if err != nil {
		return fmt.Errorf("failed to open source image: %w", err)
	}
	defer f.Close()

	if g.opts.SourceCheck == SourceCheckOff {
		return nil
	}
	strict := g.opts.SourceCheck == SourceCheckStrict

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		if strict {
			return fmt.Errorf("failed to read source image header: %w", err)
		}
		g.log.Printf("Warning: cannot inspect %s (%v), leaving it to the resizer", g.opts.Source, err)
		return nil
	}

	if cfg.Width != cfg.Height {
		if strict {
			return fmt.Errorf("%w: %s is %dx%d", ErrSourceNotSquare, g.opts.Source, cfg.Width, cfg.Height)
		}
		g.log.Printf("Warning: %s is %dx%d, icons will be distorted", g.opts.Source, cfg.Width, cfg.Height)
	}

	largest := g.opts.Catalog.LargestIcon()
	if cfg.Width < largest || cfg.Height < largest {
		if strict {
			return fmt.Errorf("%w: %s is %dx%d, need at least %dx%d",
				ErrSourceTooSmall, g.opts.Source, cfg.Width, cfg.Height, largest, largest)
		}
		g.log.Printf("Warning: %s is %dx%d, icons up to %dx%d will be upscaled",
			g.opts.Source, cfg.Width, cfg.Height, largest, largest)
	}

	g.log.Printf("Source: %s %dx%d", format, cfg.Width, cfg.Height)
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
