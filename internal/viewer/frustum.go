package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum holds the six clip planes of a camera: left, right, bottom, top,
// near, far. Normals point inward.
type Frustum struct {
	planes [6]Plane
}

// Plane is ax + by + cz + d = 0 with a unit normal.
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the frustum of camera for the given aspect ratio and
// clip range, using the Gribb/Hartmann method on the view-projection matrix.
func ExtractFrustum(camera rl.Camera3D, aspect, near, far float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, near, far)
	}

	// view first, then projection
	vp := rl.MatrixMultiply(view, proj)

	row := func(i int) (float32, float32, float32, float32) {
		switch i {
		case 0:
			return vp.M0, vp.M4, vp.M8, vp.M12
		case 1:
			return vp.M1, vp.M5, vp.M9, vp.M13
		case 2:
			return vp.M2, vp.M6, vp.M10, vp.M14
		}
		return vp.M3, vp.M7, vp.M11, vp.M15
	}
	wx, wy, wz, ww := row(3)

	var f Frustum
	for i := 0; i < 3; i++ {
		x, y, z, w := row(i)
		f.planes[i*2] = normalizePlane(Plane{
			normal:   rl.Vector3{X: wx + x, Y: wy + y, Z: wz + z},
			distance: ww + w,
		})
		f.planes[i*2+1] = normalizePlane(Plane{
			normal:   rl.Vector3{X: wx - x, Y: wy - y, Z: wz - z},
			distance: ww - w,
		})
	}
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere reports whether the sphere is inside or intersects the
// frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether point is inside the frustum.
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
