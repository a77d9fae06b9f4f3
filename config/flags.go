package config

import (
	flag "github.com/spf13/pflag"
)

// Flag names shared by RegisterFlags and ApplyFlags
const (
	FlagConfig      = "config"
	FlagSource      = "source"
	FlagOut         = "out"
	FlagManifest    = "manifest"
	FlagAuthor      = "author"
	FlagResizer     = "resizer"
	FlagSourceCheck = "source-check"
	FlagWatch       = "watch"
)

// RegisterFlags adds the command line flags to fs
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "path to a YAML config file")
	fs.StringP(FlagSource, "s", DefaultSource, "source image (1024x1024 PNG recommended)")
	fs.StringP(FlagOut, "o", DefaultOutputDir, "output .appiconset directory")
	fs.String(FlagManifest, "Contents.json", "manifest file name inside the output directory")
	fs.String(FlagAuthor, "xcode", "author tag written to the manifest")
	fs.String(FlagResizer, "auto", "resize backend: sips, native or auto")
	fs.String(FlagSourceCheck, "warn", "source validation: warn, strict or off")
	fs.BoolP(FlagWatch, "w", false, "regenerate whenever the source image changes")
}

// ApplyFlags overrides fields with flags that were set explicitly
func (c *Config) ApplyFlags(fs *flag.FlagSet) {
	fields := map[string]*string{
		FlagSource:      &c.Source,
		FlagOut:         &c.OutputDir,
		FlagManifest:    &c.ManifestName,
		FlagAuthor:      &c.Author,
		FlagResizer:     &c.Resizer,
		FlagSourceCheck: &c.SourceCheck,
	}

	for name, dst := range fields {
		if !fs.Changed(name) {
			continue
		}
		if v, err := fs.GetString(name); err == nil {
			*dst = v
		}
	}
}
