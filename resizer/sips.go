package resizer

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

const sipsBinary = "sips"

// CommandRunner runs an external program and returns its combined output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as local subprocesses.
// The subprocess is killed if ctx is cancelled.
type ExecRunner struct{}

// Run executes name with args and waits for it to finish
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Sips resizes through macOS's scriptable image processing system
type Sips struct {
	Runner CommandRunner
	// Path to the sips binary; "sips" (resolved via PATH) when empty
	Path string
}

// NewSips creates a sips resizer that runs the binary found on PATH
func NewSips() *Sips {
	return &Sips{Runner: ExecRunner{}}
}

// Resize runs: sips -z <height> <width> <source> --out <destination>
func (s *Sips) Resize(ctx context.Context, source string, width, height int, destination string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid target size %dx%d", width, height)
	}

	bin := s.Path
	if bin == "" {
		bin = sipsBinary
	}
	runner := s.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	output, err := runner.Run(ctx, bin, Args(source, width, height, destination)...)
	if err != nil {
		return fmt.Errorf("sips failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// Args builds the sips argument list. -z takes height before width.
func Args(source string, width, height int, destination string) []string {
	return []string{
		"-z", strconv.Itoa(height), strconv.Itoa(width),
		source,
		"--out", destination,
	}
}
