package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/components"
	"scenegraph/internal/compute"
	"scenegraph/internal/engine"
)

// VisibleMesh is a mesh that passed culling, with the world matrix it was
// tested at.
type VisibleMesh struct {
	Mesh   *components.Mesh
	World  rl.Matrix
	Bounds compute.Sphere
}

// Culler tests mesh bounding spheres against a frustum. World-space bounds
// come from a BoundsTransformer; a failing GPU transformer is replaced by the
// CPU one.
type Culler struct {
	bounds compute.BoundsTransformer
	log    *slog.Logger

	meshes   []*components.Mesh
	worlds   []rl.Matrix
	matrices []compute.Mat4
	local    []compute.Sphere
}

func NewCuller(bounds compute.BoundsTransformer, log *slog.Logger) *Culler {
	if bounds == nil {
		bounds = compute.CPUBounds{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Culler{bounds: bounds, log: log}
}

// Cull returns the visible meshes of enabled objects in pre-order, and the
// number tested.
func (c *Culler) Cull(scene *engine.Scene, frustum *Frustum) ([]VisibleMesh, int) {
	c.meshes = c.meshes[:0]
	c.worlds = c.worlds[:0]
	c.matrices = c.matrices[:0]
	c.local = c.local[:0]

	for _, mesh := range engine.ComponentsInScene[*components.Mesh](scene) {
		owner := mesh.Owner()
		if !owner.Enabled {
			continue
		}
		world, err := scene.WorldModelMatrix(owner.ID())
		if err != nil {
			c.log.Warn("mesh owner not in scene", "object", owner.Name, "err", err)
			continue
		}
		c.meshes = append(c.meshes, mesh)
		c.worlds = append(c.worlds, world)
		c.matrices = append(c.matrices, compute.FromMatrix(world))
		c.local = append(c.local, compute.Sphere{Radius: mesh.LocalRadius()})
	}

	spheres, err := c.bounds.Transform(c.matrices, c.local)
	if err != nil {
		c.log.Warn("gpu bounds failed, using cpu", "err", err)
		c.bounds = compute.CPUBounds{}
		spheres = compute.TransformBoundsCPU(c.matrices, c.local)
	}

	var visible []VisibleMesh
	for i, s := range spheres {
		if frustum.ContainsSphere(rl.Vector3{X: s.X, Y: s.Y, Z: s.Z}, s.Radius) {
			visible = append(visible, VisibleMesh{Mesh: c.meshes[i], World: c.worlds[i], Bounds: s})
		}
	}
	return visible, len(spheres)
}
