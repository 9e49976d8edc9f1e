package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/engine"
)

// worldMatrix returns the world matrix of c's owner. ok is false while the
// component is detached or its owner is outside any scene.
func worldMatrix(c engine.Component) (m rl.Matrix, ok bool) {
	g := c.Owner()
	if g == nil || g.Scene() == nil {
		return rl.MatrixIdentity(), false
	}
	m, err := g.Scene().WorldModelMatrix(g.ID())
	if err != nil {
		return rl.MatrixIdentity(), false
	}
	return m, true
}

func translation(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

// transformDirection applies the rotation and scale of m to v, ignoring
// translation, and normalizes the result.
func transformDirection(v rl.Vector3, m rl.Matrix) rl.Vector3 {
	m.M12, m.M13, m.M14 = 0, 0, 0
	return rl.Vector3Normalize(rl.Vector3Transform(v, m))
}

// maxScale is the largest axis scale encoded in m.
func maxScale(m rl.Matrix) float32 {
	sx := rl.Vector3Length(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
	sy := rl.Vector3Length(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	sz := rl.Vector3Length(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
	return max(sx, sy, sz)
}
