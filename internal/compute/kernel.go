package compute

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline is a compiled compute entry point. Its bind group layout is
// derived from the shader.
type Pipeline struct {
	name     string
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
	layout   *wgpu.BindGroupLayout
}

func (p *Pipeline) release() {
	p.layout.Release()
	p.pipeline.Release()
	p.shader.Release()
}

// Pipeline compiles wgsl once per name and returns the cached pipeline on
// later calls.
func (s *System) Pipeline(name, wgsl, entryPoint string) (*Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pipelines[name]; ok {
		return p, nil
	}
	shader, err := s.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	pipeline, err := s.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: name,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     shader,
			EntryPoint: entryPoint,
		},
	})
	if err != nil {
		shader.Release()
		return nil, fmt.Errorf("pipeline %s: %w", name, err)
	}
	p := &Pipeline{name: name, shader: shader, pipeline: pipeline, layout: pipeline.GetBindGroupLayout(0)}
	s.pipelines[name] = p
	return p, nil
}

// Buffer is a fixed-size GPU buffer.
type Buffer struct {
	gpu  *wgpu.Buffer
	size uint64
}

// Buffer allocates size bytes with the given usage.
func (s *System) Buffer(label string, size uint64, usage wgpu.BufferUsage) (*Buffer, error) {
	b, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return nil, fmt.Errorf("buffer %s: %w", label, err)
	}
	return &Buffer{gpu: b, size: size}, nil
}

// Upload queues data for the start of buf.
func (s *System) Upload(buf *Buffer, data []byte) error {
	if uint64(len(data)) > buf.size {
		return fmt.Errorf("upload: %d bytes into %d-byte buffer", len(data), buf.size)
	}
	s.queue.WriteBuffer(buf.gpu, 0, data)
	return nil
}

func (b *Buffer) Size() uint64 { return b.size }

func (b *Buffer) Release() {
	if b != nil && b.gpu != nil {
		b.gpu.Release()
	}
}

// Binding ties buffers to a pipeline's @group(0) slots, in @binding order.
// Buffers are fixed per kernel so it is built once and reused.
type Binding struct {
	pipeline *Pipeline
	group    *wgpu.BindGroup
}

func (s *System) Bind(p *Pipeline, buffers ...*Buffer) (*Binding, error) {
	entries := make([]wgpu.BindGroupEntry, len(buffers))
	for i, b := range buffers {
		entries[i] = wgpu.BindGroupEntry{Binding: uint32(i), Buffer: b.gpu, Size: b.size}
	}
	group, err := s.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   p.name,
		Layout:  p.layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", p.name, err)
	}
	return &Binding{pipeline: p, group: group}, nil
}

func (b *Binding) Release() {
	if b != nil && b.group != nil {
		b.group.Release()
	}
}

// Run dispatches workgroups of b's pipeline and, in the same submission,
// copies the first n bytes of out into staging, then blocks until staging
// can be read. staging needs MapRead|CopyDst usage and out CopySrc.
func (s *System) Run(b *Binding, workgroups uint32, out, staging *Buffer, n uint64) ([]byte, error) {
	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", b.pipeline.name, err)
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(b.pipeline.pipeline)
	pass.SetBindGroup(0, b.group, nil)
	pass.DispatchWorkgroups(workgroups, 1, 1)
	pass.End()
	pass.Release()
	encoder.CopyBufferToBuffer(out.gpu, 0, staging.gpu, 0, n)

	commands, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", b.pipeline.name, err)
	}
	s.queue.Submit(commands)
	commands.Release()

	mapped := make(chan error, 1)
	err = staging.gpu.MapAsync(wgpu.MapModeRead, 0, n, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapped <- fmt.Errorf("map %s result: %v", b.pipeline.name, status)
			return
		}
		mapped <- nil
	})
	if err != nil {
		return nil, err
	}
	s.device.Poll(true, nil)
	if err := <-mapped; err != nil {
		return nil, err
	}
	defer staging.gpu.Unmap()

	view := staging.gpu.GetMappedRange(0, uint(n))
	return append([]byte(nil), view...), nil
}
