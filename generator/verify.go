package generator

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"appiconset/catalog"
)

// Problem is one defect found in an existing icon set
type Problem struct {
	Entry   catalog.ManifestEntry
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s (%s %s @%s): %s", p.Entry.Filename, p.Entry.Idiom, p.Entry.Size, p.Entry.Scale, p.Message)
}

// Verify checks that every manifest entry in dir points at a square image of
// the right pixel size. The error is only set when the manifest itself is unusable.
func Verify(dir, manifestName string) ([]Problem, error) {
	if manifestName == "" {
		manifestName = DefaultManifestName
	}

	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	manifest, err := catalog.Decode(data)
	if err != nil {
		return nil, err
	}
	if manifest.Info.Version != catalog.ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", manifest.Info.Version)
	}

	var problems []Problem
	for _, entry := range manifest.Images {
		want, err := entry.PixelSize()
		if err != nil {
			problems = append(problems, Problem{entry, err.Error()})
			continue
		}

		w, h, err := imageSize(filepath.Join(dir, entry.Filename))
		if err != nil {
			problems = append(problems, Problem{entry, err.Error()})
			continue
		}
		if w != want || h != want {
			problems = append(problems, Problem{entry, fmt.Sprintf("is %dx%d, expected %dx%d", w, h, want, want)})
		}
	}

	return problems, nil
}

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, fmt.Errorf("file is missing")
		}
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
