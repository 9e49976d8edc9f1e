//go:build !darwin

package viewer

import (
	"log/slog"

	"scenegraph/internal/compute"
)

func newBoundsTransformer(cfg Config, log *slog.Logger) (compute.BoundsTransformer, func()) {
	if cfg.GPUBounds {
		// WebGPU and raylib's EGL context conflict on NVIDIA under X11
		log.Info("compute: disabled on this platform (EGL conflict workaround)")
	}
	return compute.CPUBounds{}, func() {}
}
