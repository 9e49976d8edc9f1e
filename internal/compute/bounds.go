package compute

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sphere is a bounding sphere, packed like a WGSL vec4: xyz = center,
// w = radius.
type Sphere struct {
	X, Y, Z float32
	Radius  float32
}

// Mat4 is a 4x4 matrix in column-major order, as WGSL mat4x4<f32> expects.
type Mat4 [16]float32

// FromMatrix packs a raylib matrix. Column 3 holds the translation.
func FromMatrix(m rl.Matrix) Mat4 {
	return Mat4{
		m.M0, m.M1, m.M2, m.M3,
		m.M4, m.M5, m.M6, m.M7,
		m.M8, m.M9, m.M10, m.M11,
		m.M12, m.M13, m.M14, m.M15,
	}
}

// BoundsTransformer maps local bounding spheres to world space, one matrix
// per sphere.
type BoundsTransformer interface {
	Transform(matrices []Mat4, local []Sphere) ([]Sphere, error)
}

// CPUBounds is the reference BoundsTransformer.
type CPUBounds struct{}

func (CPUBounds) Transform(matrices []Mat4, local []Sphere) ([]Sphere, error) {
	if len(matrices) != len(local) {
		return nil, fmt.Errorf("transform bounds: %d matrices for %d spheres", len(matrices), len(local))
	}
	return TransformBoundsCPU(matrices, local), nil
}

// TransformBoundsCPU moves each center by its matrix and scales its radius
// by the matrix's largest axis scale.
func TransformBoundsCPU(matrices []Mat4, local []Sphere) []Sphere {
	out := make([]Sphere, len(local))
	for i, s := range local {
		m := &matrices[i]
		out[i] = Sphere{
			X:      m[0]*s.X + m[4]*s.Y + m[8]*s.Z + m[12],
			Y:      m[1]*s.X + m[5]*s.Y + m[9]*s.Z + m[13],
			Z:      m[2]*s.X + m[6]*s.Y + m[10]*s.Z + m[14],
			Radius: s.Radius * maxAxisScale(m),
		}
	}
	return out
}

func maxAxisScale(m *Mat4) float32 {
	var best float32
	for c := 0; c < 3; c++ {
		x, y, z := m[c*4], m[c*4+1], m[c*4+2]
		if l := float32(math.Sqrt(float64(x*x + y*y + z*z))); l > best {
			best = l
		}
	}
	return best
}

const boundsShader = `
struct Sphere {
    center: vec3<f32>,
    radius: f32,
}

@group(0) @binding(0) var<storage, read> matrices: array<mat4x4<f32>>;
@group(0) @binding(1) var<storage, read> localBounds: array<Sphere>;
@group(0) @binding(2) var<storage, read_write> worldBounds: array<Sphere>;
@group(0) @binding(3) var<uniform> count: u32;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= count) {
        return;
    }

    let m = matrices[i];
    let s = localBounds[i];
    let center = m * vec4<f32>(s.center, 1.0);
    let scale = max(length(m[0].xyz), max(length(m[1].xyz), length(m[2].xyz)));
    worldBounds[i] = Sphere(center.xyz, s.radius * scale);
}
`

const boundsWorkgroupSize = 64

// BoundsKernel is the GPU BoundsTransformer. Buffers and the bind group are
// sized for a fixed capacity and reused across calls.
type BoundsKernel struct {
	system  *System
	binding *Binding

	matrices *Buffer
	local    *Buffer
	world    *Buffer
	count    *Buffer
	staging  *Buffer

	capacity uint32
}

// NewBoundsKernel compiles the kernel and allocates buffers for capacity
// spheres. It returns ErrUnavailable when Initialize has not succeeded.
func NewBoundsKernel(capacity uint32) (*BoundsKernel, error) {
	sys := Get()
	if sys == nil {
		return nil, ErrUnavailable
	}
	if capacity == 0 {
		return nil, fmt.Errorf("bounds kernel: zero capacity")
	}
	pipeline, err := sys.Pipeline("bounds", boundsShader, "main")
	if err != nil {
		return nil, err
	}

	k := &BoundsKernel{system: sys, capacity: capacity}
	n := uint64(capacity)
	input := wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	allocs := []struct {
		dst   **Buffer
		label string
		size  uint64
		usage wgpu.BufferUsage
	}{
		{&k.matrices, "bounds.matrices", n * 64, input},
		{&k.local, "bounds.local", n * 16, input},
		{&k.world, "bounds.world", n * 16, wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc},
		{&k.count, "bounds.count", 4, wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst},
		{&k.staging, "bounds.staging", n * 16, wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst},
	}
	for _, a := range allocs {
		if *a.dst, err = sys.Buffer(a.label, a.size, a.usage); err != nil {
			k.Release()
			return nil, err
		}
	}
	if k.binding, err = sys.Bind(pipeline, k.matrices, k.local, k.world, k.count); err != nil {
		k.Release()
		return nil, err
	}
	return k, nil
}

// Capacity is the maximum number of spheres per Transform call.
func (k *BoundsKernel) Capacity() uint32 { return k.capacity }

// Transform runs the kernel and waits for the result.
func (k *BoundsKernel) Transform(matrices []Mat4, local []Sphere) ([]Sphere, error) {
	if len(matrices) != len(local) {
		return nil, fmt.Errorf("transform bounds: %d matrices for %d spheres", len(matrices), len(local))
	}
	if len(local) == 0 {
		return nil, nil
	}
	if uint32(len(local)) > k.capacity {
		return nil, fmt.Errorf("transform bounds: %d spheres exceed capacity %d", len(local), k.capacity)
	}

	n := uint32(len(local))
	for _, up := range []struct {
		buf  *Buffer
		data []byte
	}{
		{k.matrices, ToBytes(matrices)},
		{k.local, ToBytes(local)},
		{k.count, ToBytes([]uint32{n})},
	} {
		if err := k.system.Upload(up.buf, up.data); err != nil {
			return nil, err
		}
	}

	groups := (n + boundsWorkgroupSize - 1) / boundsWorkgroupSize
	data, err := k.system.Run(k.binding, groups, k.world, k.staging, uint64(n)*16)
	if err != nil {
		return nil, err
	}
	return toSlice[Sphere](data)[:n:n], nil
}

// Release frees the kernel's buffers. The pipeline stays cached in the
// System.
func (k *BoundsKernel) Release() {
	k.binding.Release()
	for _, b := range []*Buffer{k.matrices, k.local, k.world, k.count, k.staging} {
		b.Release()
	}
}
