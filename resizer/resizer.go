package resizer

import (
	"context"
	"fmt"
	"os/exec"
)

// Resizer scales a source image into a width x height raster at destination,
// overwriting any existing file there.
type Resizer interface {
	Resize(ctx context.Context, source string, width, height int, destination string) error
}

// Kind selects a resizer backend
type Kind string

const (
	KindSips   Kind = "sips"
	KindNative Kind = "native"
	KindAuto   Kind = "auto"
)

// lookPath is swapped in tests
var lookPath = exec.LookPath

// New returns the backend for kind. Auto prefers sips when it is on PATH.
func New(kind Kind) (Resizer, error) {
	switch kind {
	case KindSips:
		return NewSips(), nil
	case KindNative:
		return &Native{}, nil
	case KindAuto, "":
		if path, err := lookPath(sipsBinary); err == nil {
			return &Sips{Runner: ExecRunner{}, Path: path}, nil
		}
		return &Native{}, nil
	default:
		return nil, fmt.Errorf("unknown resizer %q (want sips, native or auto)", kind)
	}
}

// Name reports which backend r is, for log lines
func Name(r Resizer) string {
	switch r.(type) {
	case *Sips:
		return string(KindSips)
	case *Native:
		return string(KindNative)
	default:
		return fmt.Sprintf("%T", r)
	}
}
