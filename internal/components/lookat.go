package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/engine"
)

func init() {
	engine.RegisterScript("LookAt", lookAtFactory, lookAtSerializer)
}

// LookAt steers cameras on its object, or below it, toward another object.
// The target is named in the scene file and resolved on Start.
type LookAt struct {
	engine.Script
	TargetName string
	EyeHeight  float32
	Target     engine.ObjectRef
}

func (l *LookAt) Start() {
	if g := l.Owner(); g != nil && g.Scene() != nil && l.TargetName != "" {
		l.Target.Set(g.Scene().FindByName(l.TargetName))
	}
}

// GetLookDirection points from the owner to the target. Without a target it
// falls back to the owner's world forward.
func (l *LookAt) GetLookDirection() (x, y, z float32) {
	g := l.Owner()
	if g == nil || g.Scene() == nil {
		return 0, 0, -1
	}
	scene := g.Scene()
	world, err := scene.WorldModelMatrix(g.ID())
	if err != nil {
		return 0, 0, -1
	}
	dir := transformDirection(rl.Vector3{Z: -1}, world)
	if target := l.Target.Get(scene); target != nil {
		if to, err := scene.WorldPosition(target.ID()); err == nil {
			eye := translation(world)
			eye.Y += l.EyeHeight
			if d := rl.Vector3Subtract(to, eye); rl.Vector3Length(d) > 1e-6 {
				dir = rl.Vector3Normalize(d)
			}
		}
	}
	return dir.X, dir.Y, dir.Z
}

func (l *LookAt) GetEyeHeight() float32 { return l.EyeHeight }

func (l *LookAt) Clone() engine.Component {
	return &LookAt{TargetName: l.TargetName, EyeHeight: l.EyeHeight, Target: l.Target}
}

func lookAtFactory(props map[string]any) engine.Component {
	l := &LookAt{EyeHeight: propFloat(props, "eyeHeight", 0)}
	if name, ok := props["target"].(string); ok {
		l.TargetName = name
	}
	return l
}

func lookAtSerializer(c engine.Component) map[string]any {
	l, ok := c.(*LookAt)
	if !ok {
		return nil
	}
	name := l.TargetName
	if g := l.Owner(); g != nil {
		if target := l.Target.Get(g.Scene()); target != nil {
			name = target.Name
		}
	}
	return map[string]any{
		"target":    name,
		"eyeHeight": float64(l.EyeHeight),
	}
}
