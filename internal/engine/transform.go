package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is the local position, orientation and scale of one object.
//
// The model matrix is derived lazily. Two flags track staleness:
// matrixOutdated gates recomputation of this transform's own matrix, while
// modified tells the owning Scene that world matrices below this object are
// stale. Only the Scene consumes modified.
type Transform struct {
	position rl.Vector3
	rotation rl.Quaternion
	scale    rl.Vector3

	model          rl.Matrix
	matrixOutdated bool
	modified       bool
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return NewTransformWith(rl.Vector3{}, rl.QuaternionIdentity(), rl.Vector3{X: 1, Y: 1, Z: 1})
}

// NewTransformWith returns a transform with explicit values. The rotation
// is normalized.
func NewTransformWith(position rl.Vector3, rotation rl.Quaternion, scale rl.Vector3) Transform {
	return Transform{
		position:       position,
		rotation:       normalizeRotation(rotation),
		scale:          scale,
		model:          rl.MatrixIdentity(),
		matrixOutdated: true,
		modified:       true,
	}
}

func normalizeRotation(q rl.Quaternion) rl.Quaternion {
	if q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0 {
		return rl.QuaternionIdentity()
	}
	return rl.QuaternionNormalize(q)
}

func (t *Transform) touch() {
	t.matrixOutdated = true
	t.modified = true
}

// Position returns the local position.
func (t *Transform) Position() rl.Vector3 { return t.position }

// SetPosition sets the local position.
func (t *Transform) SetPosition(p rl.Vector3) {
	t.position = p
	t.touch()
}

// Translate offsets the local position by delta.
func (t *Transform) Translate(delta rl.Vector3) {
	t.position = rl.Vector3Add(t.position, delta)
	t.touch()
}

// Rotation returns the local orientation.
func (t *Transform) Rotation() rl.Quaternion { return t.rotation }

// SetRotation sets the local orientation. q is normalized.
func (t *Transform) SetRotation(q rl.Quaternion) {
	t.rotation = normalizeRotation(q)
	t.touch()
}

// Rotate applies a rotation of angle radians around axis, in local space.
func (t *Transform) Rotate(axis rl.Vector3, angle float32) {
	delta := rl.QuaternionFromAxisAngle(axis, angle)
	t.rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(t.rotation, delta))
	t.touch()
}

// RotateEuler applies pitch, yaw and roll in radians.
func (t *Transform) RotateEuler(pitch, yaw, roll float32) {
	delta := rl.QuaternionFromEuler(pitch, yaw, roll)
	t.rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(t.rotation, delta))
	t.touch()
}

// Scale returns the local scale.
func (t *Transform) Scale() rl.Vector3 { return t.scale }

// SetScale sets the local scale.
func (t *Transform) SetScale(s rl.Vector3) {
	t.scale = s
	t.touch()
}

// ScaleBy multiplies the local scale component-wise by factor.
func (t *Transform) ScaleBy(factor rl.Vector3) {
	t.scale = rl.Vector3Multiply(t.scale, factor)
	t.touch()
}

// ModelMatrix returns the local model matrix: scale, then rotation, then
// translation.
func (t *Transform) ModelMatrix() rl.Matrix {
	if t.matrixOutdated {
		m := rl.MatrixScale(t.scale.X, t.scale.Y, t.scale.Z)
		m = rl.MatrixMultiply(m, rl.QuaternionToMatrix(t.rotation))
		m = rl.MatrixMultiply(m, rl.MatrixTranslate(t.position.X, t.position.Y, t.position.Z))
		t.model = m
		t.matrixOutdated = false
	}
	return t.model
}

// Forward returns the local -Z axis rotated by the orientation.
func (t *Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, t.rotation)
}

// Up returns the local +Y axis rotated by the orientation.
func (t *Transform) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, t.rotation)
}

// Right returns the local +X axis rotated by the orientation.
func (t *Transform) Right() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, t.rotation)
}

// Modified reports whether the transform changed since the owning scene
// last consumed it.
func (t *Transform) Modified() bool { return t.modified }

// resetModified is the Scene side of the staleness handshake.
func (t *Transform) resetModified() {
	t.modified = false
}

func (t *Transform) markModified() {
	t.modified = true
}
