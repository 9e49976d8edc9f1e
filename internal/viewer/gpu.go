package viewer

import (
	"log/slog"

	"scenegraph/internal/compute"
)

// openGPUBounds brings up the compute device through initialize and the
// bounds kernel on top of it. Any failure is logged and yields CPUBounds.
func openGPUBounds(cfg Config, log *slog.Logger, initialize func() (compute.AdapterInfo, error)) (compute.BoundsTransformer, func()) {
	if !cfg.GPUBounds {
		return compute.CPUBounds{}, func() {}
	}
	info, err := initialize()
	if err != nil {
		log.Warn("gpu compute unavailable, using cpu bounds", "err", err)
		return compute.CPUBounds{}, func() {}
	}
	log.Info("compute", "backend", info.Backend, "vendor", info.Vendor, "adapter", info.Name, "type", info.DeviceType)

	kernel, err := compute.NewBoundsKernel(uint32(cfg.BoundsCapacity))
	if err != nil {
		log.Warn("bounds kernel unavailable", "err", err)
		return compute.CPUBounds{}, compute.Get().Release
	}
	return kernel, func() {
		kernel.Release()
		compute.Get().Release()
	}
}
