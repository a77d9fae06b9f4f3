package catalog

import (
	"encoding/json"
	"fmt"
)

// Manifest is the Contents.json document of an .appiconset directory.
// Field order is the key order Xcode tooling expects.
type Manifest struct {
	Images []ManifestEntry `json:"images"`
	Info   Info            `json:"info"`
}

// Info is the manifest's metadata record
type Info struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

// Manifest builds the Contents.json document for the catalog.
// It depends only on the catalog, never on which files were written.
func (c Catalog) Manifest() Manifest {
	author := c.Author
	if author == "" {
		author = DefaultAuthor
	}

	images := make([]ManifestEntry, len(c.Images))
	copy(images, c.Images)

	return Manifest{
		Images: images,
		Info: Info{
			Version: ManifestVersion,
			Author:  author,
		},
	}
}

// Encode renders the manifest as two-space indented JSON.
// The output is deterministic and has no trailing newline.
func (m Manifest) Encode() ([]byte, error) {
	images := m.Images
	if images == nil {
		images = []ManifestEntry{}
	}
	data, err := json.MarshalIndent(Manifest{Images: images, Info: m.Info}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// Decode parses a Contents.json document
func Decode(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}
