package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/engine"
)

type LightType int

const (
	LightDirectional LightType = iota
	LightPoint
)

func (t LightType) String() string {
	if t == LightPoint {
		return "point"
	}
	return "directional"
}

// Light is a directional or point light. Direction is in the owner's local
// space and follows its world rotation.
type Light struct {
	engine.BaseComponent
	Type      LightType
	Color     rl.Color
	Intensity float32
	Radius    float32 // falloff distance, point lights only
	Direction rl.Vector3
}

func NewDirectionalLight() *Light {
	return &Light{
		Type:      LightDirectional,
		Color:     rl.White,
		Intensity: 1.0,
		Direction: rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}),
	}
}

func NewPointLight() *Light {
	return &Light{
		Type:      LightPoint,
		Color:     rl.White,
		Intensity: 1.0,
		Radius:    10.0,
		Direction: rl.Vector3{Y: -1},
	}
}

func (l *Light) Kind() engine.ComponentKind { return engine.KindLight }

func (l *Light) Clone() engine.Component {
	dup := *l
	dup.BaseComponent = engine.BaseComponent{}
	return &dup
}

func (l *Light) WorldPosition() rl.Vector3 {
	m, _ := worldMatrix(l)
	return translation(m)
}

func (l *Light) WorldDirection() rl.Vector3 {
	m, _ := worldMatrix(l)
	return transformDirection(l.Direction, m)
}

func (l *Light) ColorFloat() []float32 {
	return []float32{
		float32(l.Color.R) / 255.0 * l.Intensity,
		float32(l.Color.G) / 255.0 * l.Intensity,
		float32(l.Color.B) / 255.0 * l.Intensity,
		1.0,
	}
}
