package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/engine"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool // If true, this is the active camera
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        45.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
		IsMain:     false,
	}
}

func (c *Camera) Kind() engine.ComponentKind { return engine.KindCamera }

func (c *Camera) Clone() engine.Component {
	dup := *c
	dup.BaseComponent = engine.BaseComponent{}
	return &dup
}

// Camera3D builds a raylib camera from the owner's world matrix. A
// LookProvider on the owner or one of its ancestors overrides the look
// direction.
func (c *Camera) Camera3D() rl.Camera3D {
	g := c.Owner()
	world, ok := worldMatrix(c)
	if !ok {
		return rl.Camera3D{}
	}
	eyePos := translation(world)

	lookProvider, onSelf := c.findLookProvider(g)

	var forward, up rl.Vector3
	if lookProvider != nil {
		// Camera on the same object as the controller sits at eye height
		if onSelf {
			eyePos.Y += lookProvider.GetEyeHeight()
		}
		x, y, z := lookProvider.GetLookDirection()
		forward = rl.Vector3{X: x, Y: y, Z: z}
		up = rl.Vector3{Y: 1}
	} else {
		forward = transformDirection(rl.Vector3{Z: -1}, world)
		up = transformDirection(rl.Vector3{Y: 1}, world)
	}

	return rl.Camera3D{
		Position:   eyePos,
		Target:     rl.Vector3Add(eyePos, forward),
		Up:         up,
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

func (c *Camera) findLookProvider(g *engine.SceneObject) (lp engine.LookProvider, onSelf bool) {
	scene := g.Scene()
	for obj := g; obj != nil; {
		if lp := engine.FindComponent[engine.LookProvider](obj); lp != nil {
			return lp, obj == g
		}
		parent, err := scene.Parent(obj.ID())
		if err != nil {
			return nil, false
		}
		obj = parent
	}
	return nil, false
}

// MainCamera returns the first camera marked IsMain in scene, falling back
// to the first camera found.
func MainCamera(scene *engine.Scene) *Camera {
	cameras := engine.ComponentsInScene[*Camera](scene)
	for _, cam := range cameras {
		if cam.IsMain {
			return cam
		}
	}
	if len(cameras) > 0 {
		return cameras[0]
	}
	return nil
}
