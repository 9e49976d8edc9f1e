package components

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"scenegraph/internal/engine"
)

func init() {
	engine.RegisterScript("Rotator", rotatorFactory, rotatorSerializer)
	engine.RegisterScript("Bobber", bobberFactory, bobberSerializer)
	engine.RegisterScript("Tween", tweenFactory, tweenSerializer)
}

func propFloat(props map[string]any, key string, fallback float32) float32 {
	switch v := props[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	case int:
		return float32(v)
	}
	return fallback
}

func propVector(props map[string]any, key string, fallback rl.Vector3) rl.Vector3 {
	raw, ok := props[key].([]any)
	if !ok || len(raw) != 3 {
		return fallback
	}
	var out [3]float32
	for i, v := range raw {
		switch n := v.(type) {
		case float64:
			out[i] = float32(n)
		case int:
			out[i] = float32(n)
		default:
			return fallback
		}
	}
	return rl.Vector3{X: out[0], Y: out[1], Z: out[2]}
}

func vectorProp(v rl.Vector3) []any {
	return []any{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Rotator spins its object around a local axis.
type Rotator struct {
	engine.Script
	Axis  rl.Vector3
	Speed float32 // degrees per second
}

func (r *Rotator) Update(deltaTime float32) {
	g := r.Owner()
	if g == nil {
		return
	}
	g.Transform().Rotate(r.Axis, r.Speed*deltaTime*rl.Deg2rad)
}

func (r *Rotator) Clone() engine.Component {
	return &Rotator{Axis: r.Axis, Speed: r.Speed}
}

func rotatorFactory(props map[string]any) engine.Component {
	return &Rotator{
		Axis:  propVector(props, "axis", rl.Vector3{Y: 1}),
		Speed: propFloat(props, "speed", 90),
	}
}

func rotatorSerializer(c engine.Component) map[string]any {
	r, ok := c.(*Rotator)
	if !ok {
		return nil
	}
	return map[string]any{
		"axis":  vectorProp(r.Axis),
		"speed": float64(r.Speed),
	}
}

// Bobber moves its object back and forth along Axis around the position it
// had when started.
type Bobber struct {
	engine.Script
	Axis      rl.Vector3
	Amplitude float32
	Frequency float32 // cycles per second
	Phase     float32

	origin rl.Vector3
	time   float32
}

func (b *Bobber) Start() {
	if g := b.Owner(); g != nil {
		b.origin = g.Transform().Position()
	}
	b.time = 0
}

func (b *Bobber) Update(deltaTime float32) {
	g := b.Owner()
	if g == nil {
		return
	}
	b.time += deltaTime
	s := float32(math.Sin(float64(2*math.Pi*b.Frequency*b.time + b.Phase)))
	offset := rl.Vector3Scale(b.Axis, b.Amplitude*s)
	g.Transform().SetPosition(rl.Vector3Add(b.origin, offset))
}

func (b *Bobber) Clone() engine.Component {
	return &Bobber{Axis: b.Axis, Amplitude: b.Amplitude, Frequency: b.Frequency, Phase: b.Phase}
}

func bobberFactory(props map[string]any) engine.Component {
	return &Bobber{
		Axis:      propVector(props, "axis", rl.Vector3{Y: 1}),
		Amplitude: propFloat(props, "amplitude", 0.5),
		Frequency: propFloat(props, "frequency", 0.5),
		Phase:     propFloat(props, "phase", 0),
	}
}

func bobberSerializer(c engine.Component) map[string]any {
	b, ok := c.(*Bobber)
	if !ok {
		return nil
	}
	return map[string]any{
		"axis":      vectorProp(b.Axis),
		"amplitude": float64(b.Amplitude),
		"frequency": float64(b.Frequency),
		"phase":     float64(b.Phase),
	}
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
	"inOutBack":  ease.InOutBack,
}

// Tween moves its object from the position it had when started to Target
// over Duration seconds. With PingPong it keeps going back and forth.
type Tween struct {
	engine.Script
	Target   rl.Vector3
	Duration float32
	Ease     string
	PingPong bool

	from, to rl.Vector3
	tweens   [3]*gween.Tween
	done     bool
}

func (t *Tween) Start() {
	g := t.Owner()
	if g == nil {
		return
	}
	t.from, t.to = g.Transform().Position(), t.Target
	t.done = false
	t.build(t.from, t.to)
}

func (t *Tween) build(from, to rl.Vector3) {
	fn, ok := easings[t.Ease]
	if !ok {
		fn = ease.Linear
	}
	t.tweens[0] = gween.New(from.X, to.X, t.Duration, fn)
	t.tweens[1] = gween.New(from.Y, to.Y, t.Duration, fn)
	t.tweens[2] = gween.New(from.Z, to.Z, t.Duration, fn)
}

// Done reports whether a one-shot tween reached its target.
func (t *Tween) Done() bool { return t.done }

func (t *Tween) Update(deltaTime float32) {
	g := t.Owner()
	if g == nil || t.done {
		return
	}
	if t.tweens[0] == nil {
		t.Start()
	}

	var pos [3]float32
	finished := true
	for i, tw := range t.tweens {
		v, end := tw.Update(deltaTime)
		pos[i] = v
		finished = finished && end
	}
	g.Transform().SetPosition(rl.Vector3{X: pos[0], Y: pos[1], Z: pos[2]})

	if !finished {
		return
	}
	if t.PingPong {
		t.from, t.to = t.to, t.from
		t.build(t.from, t.to)
		return
	}
	t.done = true
}

func (t *Tween) Clone() engine.Component {
	return &Tween{Target: t.Target, Duration: t.Duration, Ease: t.Ease, PingPong: t.PingPong}
}

func tweenFactory(props map[string]any) engine.Component {
	tw := &Tween{
		Target:   propVector(props, "target", rl.Vector3{}),
		Duration: propFloat(props, "duration", 1),
		Ease:     "linear",
	}
	if e, ok := props["ease"].(string); ok {
		tw.Ease = e
	}
	if p, ok := props["pingPong"].(bool); ok {
		tw.PingPong = p
	}
	return tw
}

func tweenSerializer(c engine.Component) map[string]any {
	tw, ok := c.(*Tween)
	if !ok {
		return nil
	}
	return map[string]any{
		"target":   vectorProp(tw.Target),
		"duration": float64(tw.Duration),
		"ease":     tw.Ease,
		"pingPong": tw.PingPong,
	}
}
