package components

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/engine"
)

type MeshShape int

const (
	MeshCube MeshShape = iota
	MeshSphere
	MeshPlane
)

var meshShapeNames = map[MeshShape]string{
	MeshCube:   "cube",
	MeshSphere: "sphere",
	MeshPlane:  "plane",
}

func (s MeshShape) String() string {
	if name, ok := meshShapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MeshShape(%d)", int(s))
}

// ParseMeshShape maps a scene-file shape name to a MeshShape.
func ParseMeshShape(name string) (MeshShape, error) {
	for shape, n := range meshShapeNames {
		if n == name {
			return shape, nil
		}
	}
	return 0, fmt.Errorf("unknown mesh shape %q", name)
}

// Mesh is a primitive shape drawn at its owner's world transform. Size is
// the full extent for cubes and planes (Y ignored) and X is the radius for
// spheres.
type Mesh struct {
	engine.BaseComponent
	Shape MeshShape
	Color rl.Color
	Size  rl.Vector3
}

func NewMesh(shape MeshShape, color rl.Color, size rl.Vector3) *Mesh {
	return &Mesh{
		Shape: shape,
		Color: color,
		Size:  size,
	}
}

func (m *Mesh) Kind() engine.ComponentKind { return engine.KindMesh }

func (m *Mesh) Clone() engine.Component {
	return NewMesh(m.Shape, m.Color, m.Size)
}

// LocalRadius is the radius of a sphere around the local origin enclosing
// the shape.
func (m *Mesh) LocalRadius() float32 {
	switch m.Shape {
	case MeshSphere:
		return m.Size.X
	case MeshPlane:
		return 0.5 * rl.Vector2Length(rl.Vector2{X: m.Size.X, Y: m.Size.Z})
	default:
		return 0.5 * rl.Vector3Length(m.Size)
	}
}

// WorldBounds returns the bounding sphere in world space.
func (m *Mesh) WorldBounds() (center rl.Vector3, radius float32, ok bool) {
	world, ok := worldMatrix(m)
	if !ok {
		return rl.Vector3{}, 0, false
	}
	return translation(world), m.LocalRadius() * maxScale(world), true
}

// WorldMatrix returns the owner's world matrix, or identity when detached.
func (m *Mesh) WorldMatrix() rl.Matrix {
	world, _ := worldMatrix(m)
	return world
}
