//go:build darwin

package viewer

import (
	"log/slog"

	"scenegraph/internal/compute"
)

func newBoundsTransformer(cfg Config, log *slog.Logger) (compute.BoundsTransformer, func()) {
	// Metal on Mac works fine alongside the GL context
	return openGPUBounds(cfg, log, compute.Initialize)
}
