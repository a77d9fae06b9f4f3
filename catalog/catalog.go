package catalog

// Static description of an iOS app icon set.
//
// A catalog has two halves:
// 1. Icons: the raster files to produce (filename + square pixel size)
// 2. Images: the Contents.json entries that map those files to
//    device idiom / point size / display scale
//
// The two lists only share filenames. Several entries may point at the same
// file (40.png is both iPhone 20pt@2x and iPad 40pt@1x).

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAuthor is the author tag Xcode writes into Contents.json
const DefaultAuthor = "xcode"

// ManifestVersion is the only asset catalog schema version we emit
const ManifestVersion = 1

// IconSpec is one raster file to generate
type IconSpec struct {
	Filename string `yaml:"filename"`
	Size     int    `yaml:"size"`
}

// ManifestEntry maps a generated file to an idiom/size/scale slot
type ManifestEntry struct {
	Size     string `json:"size" yaml:"size"`
	Idiom    string `json:"idiom" yaml:"idiom"`
	Filename string `json:"filename" yaml:"filename"`
	Scale    string `json:"scale" yaml:"scale"`
}

// Catalog bundles the static configuration for one run
type Catalog struct {
	Icons  []IconSpec
	Images []ManifestEntry
	Author string
}

var validIdioms = map[string]bool{
	"iphone":        true,
	"ipad":          true,
	"ios-marketing": true,
}

var validScales = map[string]float64{
	"1x": 1,
	"2x": 2,
	"3x": 3,
}

// DefaultIcons returns the 13 icon sizes of the standard iOS icon set
func DefaultIcons() []IconSpec {
	return []IconSpec{
		{"20.png", 20},
		{"29.png", 29},
		{"40.png", 40},
		{"58.png", 58},
		{"60.png", 60},
		{"76.png", 76},
		{"80.png", 80},
		{"87.png", 87},
		{"120.png", 120},
		{"152.png", 152},
		{"167.png", 167},
		{"180.png", 180},
		{"1024.png", 1024},
	}
}

// DefaultImages returns the 18 Contents.json entries of the standard iOS icon set
func DefaultImages() []ManifestEntry {
	return []ManifestEntry{
		{"20x20", "iphone", "40.png", "2x"},
		{"20x20", "iphone", "60.png", "3x"},
		{"29x29", "iphone", "58.png", "2x"},
		{"29x29", "iphone", "87.png", "3x"},
		{"40x40", "iphone", "80.png", "2x"},
		{"40x40", "iphone", "120.png", "3x"},
		{"60x60", "iphone", "120.png", "2x"},
		{"60x60", "iphone", "180.png", "3x"},
		{"20x20", "ipad", "20.png", "1x"},
		{"20x20", "ipad", "40.png", "2x"},
		{"29x29", "ipad", "29.png", "1x"},
		{"29x29", "ipad", "58.png", "2x"},
		{"40x40", "ipad", "40.png", "1x"},
		{"40x40", "ipad", "80.png", "2x"},
		{"76x76", "ipad", "76.png", "1x"},
		{"76x76", "ipad", "152.png", "2x"},
		{"83.5x83.5", "ipad", "167.png", "2x"},
		{"1024x1024", "ios-marketing", "1024.png", "1x"},
	}
}

// Default returns a fresh copy of the standard iOS icon catalog
func Default() Catalog {
	return Catalog{
		Icons:  DefaultIcons(),
		Images: DefaultImages(),
		Author: DefaultAuthor,
	}
}

// LargestIcon returns the biggest pixel size in the catalog (0 if empty)
func (c Catalog) LargestIcon() int {
	largest := 0
	for _, icon := range c.Icons {
		if icon.Size > largest {
			largest = icon.Size
		}
	}
	return largest
}

// PixelSize returns the pixel edge length of the entry: logical size times scale
func (e ManifestEntry) PixelSize() (int, error) {
	w, h, ok := strings.Cut(e.Size, "x")
	if !ok {
		return 0, fmt.Errorf("invalid size %q: expected WxH", e.Size)
	}
	if w != h {
		return 0, fmt.Errorf("invalid size %q: icons must be square", e.Size)
	}

	points, err := strconv.ParseFloat(w, 64)
	if err != nil || points <= 0 {
		return 0, fmt.Errorf("invalid size %q: bad point value", e.Size)
	}

	scale, ok := validScales[e.Scale]
	if !ok {
		return 0, fmt.Errorf("invalid scale %q", e.Scale)
	}

	pixels := points * scale
	if pixels != float64(int(pixels)) {
		return 0, fmt.Errorf("size %s @%s is not a whole number of pixels", e.Size, e.Scale)
	}
	return int(pixels), nil
}

// Validate checks that icons and manifest entries agree with each other
func (c Catalog) Validate() error {
	if len(c.Icons) == 0 {
		return fmt.Errorf("catalog has no icons")
	}

	sizes := make(map[string]int, len(c.Icons))
	for _, icon := range c.Icons {
		if icon.Filename == "" {
			return fmt.Errorf("icon with size %d has no filename", icon.Size)
		}
		if icon.Size <= 0 {
			return fmt.Errorf("icon %s: size must be positive, got %d", icon.Filename, icon.Size)
		}
		if _, dup := sizes[icon.Filename]; dup {
			return fmt.Errorf("duplicate icon filename: %s", icon.Filename)
		}
		sizes[icon.Filename] = icon.Size
	}

	for i, entry := range c.Images {
		if !validIdioms[entry.Idiom] {
			return fmt.Errorf("image %d: unknown idiom %q", i, entry.Idiom)
		}
		pixels, err := entry.PixelSize()
		if err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		size, ok := sizes[entry.Filename]
		if !ok {
			return fmt.Errorf("image %d: %s is not produced by any icon", i, entry.Filename)
		}
		if size != pixels {
			return fmt.Errorf("image %d: %s is %dpx but %s @%s needs %dpx",
				i, entry.Filename, size, entry.Size, entry.Scale, pixels)
		}
	}

	return nil
}
