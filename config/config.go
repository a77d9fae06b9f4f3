package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"appiconset/catalog"
	"appiconset/generator"
	"appiconset/resizer"
)

// Defaults match the layout Xcode expects next to the source image
const (
	DefaultSource    = "ic_launcher.png"
	DefaultOutputDir = "Assets.xcassets/AppIcon.appiconset"
)

// Config represents the application configuration
type Config struct {
	Source       string `yaml:"source"`
	OutputDir    string `yaml:"output_dir"`
	ManifestName string `yaml:"manifest_name"`
	Author       string `yaml:"author"`
	Resizer      string `yaml:"resizer"`
	SourceCheck  string `yaml:"source_check"`

	// Replace the built-in iOS catalog when set
	Icons  []catalog.IconSpec      `yaml:"icons"`
	Images []catalog.ManifestEntry `yaml:"images"`
}

type envConfig struct {
	Source       string `env:"APPICONSET_SOURCE"`
	OutputDir    string `env:"APPICONSET_OUTPUT_DIR"`
	ManifestName string `env:"APPICONSET_MANIFEST_NAME"`
	Author       string `env:"APPICONSET_AUTHOR"`
	Resizer      string `env:"APPICONSET_RESIZER"`
	SourceCheck  string `env:"APPICONSET_SOURCE_CHECK"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Source:       DefaultSource,
		OutputDir:    DefaultOutputDir,
		ManifestName: generator.DefaultManifestName,
		Author:       catalog.DefaultAuthor,
		Resizer:      string(resizer.KindAuto),
		SourceCheck:  string(generator.SourceCheckWarn),
		Icons:        catalog.DefaultIcons(),
		Images:       catalog.DefaultImages(),
	}
}

// Load reads the configuration file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from a .env file if it exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from APPICONSET_* environment variables
func (c *Config) ApplyEnv() error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	override(&c.Source, e.Source)
	override(&c.OutputDir, e.OutputDir)
	override(&c.ManifestName, e.ManifestName)
	override(&c.Author, e.Author)
	override(&c.Resizer, e.Resizer)
	override(&c.SourceCheck, e.SourceCheck)
	return nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.ManifestName == "" {
		return fmt.Errorf("manifest_name is required")
	}

	switch resizer.Kind(c.Resizer) {
	case resizer.KindSips, resizer.KindNative, resizer.KindAuto:
	default:
		return fmt.Errorf("resizer must be sips, native or auto, got %q", c.Resizer)
	}

	switch generator.SourceCheck(c.SourceCheck) {
	case generator.SourceCheckWarn, generator.SourceCheckStrict, generator.SourceCheckOff:
	default:
		return fmt.Errorf("source_check must be warn, strict or off, got %q", c.SourceCheck)
	}

	if err := c.Catalog().Validate(); err != nil {
		return fmt.Errorf("invalid icon catalog: %w", err)
	}
	return nil
}

// Catalog returns the icon catalog described by the config
func (c *Config) Catalog() catalog.Catalog {
	return catalog.Catalog{
		Icons:  c.Icons,
		Images: c.Images,
		Author: c.Author,
	}
}

// GeneratorOptions converts the config into generator options
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Source:       c.Source,
		OutputDir:    c.OutputDir,
		ManifestName: c.ManifestName,
		Catalog:      c.Catalog(),
		SourceCheck:  generator.SourceCheck(c.SourceCheck),
	}
}
