package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/components"
	"scenegraph/internal/engine"
)

const ambient = 0.35

// Renderer draws primitive meshes at their world transforms plus debug
// gizmos. It must be used between BeginMode3D and EndMode3D.
type Renderer struct {
	ShowBounds bool
	GridSlices int32
}

func NewRenderer(showBounds bool) *Renderer {
	return &Renderer{ShowBounds: showBounds, GridSlices: 20}
}

// Draw renders the visible meshes, shaded by the scene's directional
// lights, and a gizmo per light. selected gets its bounds highlighted.
func (r *Renderer) Draw(visible []VisibleMesh, lights []*components.Light, selected *engine.SceneObject) {
	rl.DrawGrid(r.GridSlices, 1.0)

	brightness := lightLevel(lights)
	for _, v := range visible {
		r.drawMesh(v, brightness)
		if v.Mesh.Owner() == selected {
			rl.DrawSphereWires(sphereCenter(v), v.Bounds.Radius, 8, 12, colorAccentLight)
		} else if r.ShowBounds {
			rl.DrawSphereWires(sphereCenter(v), v.Bounds.Radius, 6, 8, rl.Fade(rl.Green, 0.4))
		}
	}

	for _, l := range lights {
		if l.Owner() == nil || !l.Owner().Enabled {
			continue
		}
		drawLightGizmo(l)
	}
}

func (r *Renderer) drawMesh(v VisibleMesh, brightness float32) {
	color := shade(v.Mesh.Color, brightness)

	rl.PushMatrix()
	rl.MultMatrix(v.World)
	switch v.Mesh.Shape {
	case components.MeshSphere:
		rl.DrawSphere(rl.Vector3{}, v.Mesh.Size.X, color)
	case components.MeshPlane:
		rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: v.Mesh.Size.X, Y: v.Mesh.Size.Z}, color)
	default:
		rl.DrawCube(rl.Vector3{}, v.Mesh.Size.X, v.Mesh.Size.Y, v.Mesh.Size.Z, color)
		rl.DrawCubeWires(rl.Vector3{}, v.Mesh.Size.X, v.Mesh.Size.Y, v.Mesh.Size.Z, rl.Fade(rl.Black, 0.3))
	}
	rl.PopMatrix()
}

func drawLightGizmo(l *components.Light) {
	pos := l.WorldPosition()
	switch l.Type {
	case components.LightPoint:
		rl.DrawSphere(pos, 0.15, l.Color)
		rl.DrawSphereWires(pos, l.Radius, 4, 8, rl.Fade(l.Color, 0.2))
	default:
		dir := l.WorldDirection()
		rl.DrawSphere(pos, 0.25, rl.Yellow)
		rl.DrawLine3D(pos, rl.Vector3Add(pos, rl.Vector3Scale(dir, 2)), rl.Yellow)
	}
}

// lightLevel is ambient plus the summed intensity of enabled directional
// lights, clamped to 1.
func lightLevel(lights []*components.Light) float32 {
	level := float32(ambient)
	for _, l := range lights {
		if l.Type != components.LightDirectional || l.Owner() == nil || !l.Owner().Enabled {
			continue
		}
		c := l.ColorFloat()
		level += (1 - ambient) * (c[0] + c[1] + c[2]) / 3
	}
	return min(level, 1)
}

func shade(c rl.Color, level float32) rl.Color {
	return rl.NewColor(
		uint8(float32(c.R)*level),
		uint8(float32(c.G)*level),
		uint8(float32(c.B)*level),
		c.A,
	)
}

func sphereCenter(v VisibleMesh) rl.Vector3 {
	return rl.Vector3{X: v.Bounds.X, Y: v.Bounds.Y, Z: v.Bounds.Z}
}
