// Package compute runs WGSL compute kernels through WebGPU. It is
// independent of raylib's OpenGL context and optional: callers fall back to
// CPU code when Initialize fails.
package compute

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnavailable is returned when a kernel is requested before a successful
// Initialize.
var ErrUnavailable = errors.New("gpu compute unavailable")

// AdapterInfo describes the selected GPU.
type AdapterInfo struct {
	Name       string
	Vendor     string
	Backend    string
	DeviceType string
	Driver     string
}

// System owns the WebGPU device and the compiled pipelines.
type System struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.Mutex
	pipelines map[string]*Pipeline
}

var (
	global     *System
	globalOnce sync.Once
	globalErr  error
)

// Initialize opens the high-performance adapter once. Later calls return
// the first outcome.
func Initialize() (AdapterInfo, error) {
	globalOnce.Do(func() {
		global, globalErr = open()
		if globalErr != nil {
			slog.Warn("gpu compute disabled", "err", globalErr)
		}
	})
	if globalErr != nil {
		return AdapterInfo{}, globalErr
	}
	return global.Info(), nil
}

// Get returns the system opened by Initialize, or nil.
func Get() *System {
	return global
}

func open() (*System, error) {
	s := &System{
		instance:  wgpu.CreateInstance(nil),
		pipelines: map[string]*Pipeline{},
	}
	var err error
	s.adapter, err = s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("request gpu adapter: %w", err)
	}
	s.device, err = s.adapter.RequestDevice(nil)
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("request gpu device: %w", err)
	}
	s.queue = s.device.GetQueue()
	return s, nil
}

// Info reports the adapter in use.
func (s *System) Info() AdapterInfo {
	info := s.adapter.GetInfo()
	return AdapterInfo{
		Name:       info.Name,
		Vendor:     info.VendorName,
		Backend:    info.BackendType.String(),
		DeviceType: info.AdapterType.String(),
		Driver:     info.DriverDescription,
	}
}

// Release frees the pipelines and the device. Safe on a partly opened
// system.
func (s *System) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, p := range s.pipelines {
		p.release()
		delete(s.pipelines, name)
	}
	if s.queue != nil {
		s.queue.Release()
	}
	if s.device != nil {
		s.device.Release()
	}
	if s.adapter != nil {
		s.adapter.Release()
	}
	if s.instance != nil {
		s.instance.Release()
	}
}

// ToBytes reinterprets a slice for upload.
func ToBytes[T any](data []T) []byte {
	return wgpu.ToBytes(data)
}

func toSlice[T any](data []byte) []T {
	return wgpu.FromBytes[T](data)
}
