package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	flag "github.com/spf13/pflag"

	"appiconset/config"
	"appiconset/generator"
	"appiconset/resizer"
	"appiconset/watcher"
)

func main() {
	fs := flag.NewFlagSet("appiconset", flag.ExitOnError)
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: appiconset [flags]\n\nGenerates an iOS AppIcon.appiconset from one source image.\n\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	log.SetFlags(0)

	cfg, err := loadConfig(fs)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	r, err := resizer.New(resizer.Kind(cfg.Resizer))
	if err != nil {
		log.Fatalf("Failed to create resizer: %v", err)
	}

	gen, err := generator.New(cfg.GeneratorOptions(), r, log.Default())
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Using %s resizer", resizer.Name(r))
	if _, err := gen.Run(ctx); err != nil {
		var resizeErr *generator.ResizeError
		if errors.As(err, &resizeErr) {
			log.Fatalf("❌ Resize failed for %s: %v", resizeErr.Icon.Filename, resizeErr.Err)
		}
		log.Fatalf("❌ %v", err)
	}

	if watch, _ := fs.GetBool(config.FlagWatch); watch {
		if err := watchSource(ctx, cfg.Source, gen); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
	}
}

// loadConfig layers defaults, config file, .env, environment and flags
func loadConfig(fs *flag.FlagSet) (*config.Config, error) {
	path, _ := fs.GetString(config.FlagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(fs)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// watchSource regenerates the icon set every time the source changes
func watchSource(ctx context.Context, source string, gen *generator.Generator) error {
	var mu sync.Mutex
	w, err := watcher.NewWatcher(source, func(path string) {
		mu.Lock()
		defer mu.Unlock()

		log.Printf("📄 %s changed, regenerating...", path)
		if _, err := gen.Run(ctx); err != nil {
			log.Printf("Regeneration failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return err
	}

	log.Println("Press Ctrl+C to stop")
	<-ctx.Done()

	log.Println("Shutting down...")
	return w.Stop()
}
