package components

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegraph/internal/engine"
)

const epsilon = 1e-4

func assertVec3(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, epsilon, "x")
	assert.InDelta(t, want.Y, got.Y, epsilon, "y")
	assert.InDelta(t, want.Z, got.Z, epsilon, "z")
}

func newObject(t *testing.T, s *engine.Scene, name string, parent *engine.SceneObject) *engine.SceneObject {
	t.Helper()
	o, err := s.NewObject(name, parent.ID())
	require.NoError(t, err)
	return o
}

func TestMeshShapeNames(t *testing.T) {
	for _, shape := range []MeshShape{MeshCube, MeshSphere, MeshPlane} {
		parsed, err := ParseMeshShape(shape.String())
		require.NoError(t, err)
		assert.Equal(t, shape, parsed)
	}
	_, err := ParseMeshShape("torus")
	assert.Error(t, err)
}

func TestMeshWorldBounds(t *testing.T) {
	s := engine.NewScene("Bounds")
	parent := newObject(t, s, "Parent", s.Root())
	parent.Transform().SetPosition(rl.Vector3{X: 4})
	parent.Transform().SetScale(rl.Vector3{X: 1, Y: 3, Z: 1})
	child := newObject(t, s, "Child", parent)
	child.Transform().SetPosition(rl.Vector3{Y: 1})

	mesh, err := engine.AddComponent(child, NewMesh(MeshSphere, rl.Red, rl.Vector3{X: 0.5}))
	require.NoError(t, err)

	center, radius, ok := mesh.WorldBounds()
	require.True(t, ok)
	assertVec3(t, rl.Vector3{X: 4, Y: 3}, center)
	assert.InDelta(t, 1.5, radius, epsilon)

	detached := NewMesh(MeshCube, rl.Red, rl.Vector3{X: 2, Y: 2, Z: 2})
	_, _, ok = detached.WorldBounds()
	assert.False(t, ok)
	assert.InDelta(t, math.Sqrt(3), detached.LocalRadius(), epsilon)
}

func TestLightWorldDirection(t *testing.T) {
	s := engine.NewScene("Lights")
	holder := newObject(t, s, "Holder", s.Root())
	holder.Transform().SetPosition(rl.Vector3{Y: 10})
	holder.Transform().SetRotation(rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2))

	light := NewPointLight()
	light.Direction = rl.Vector3{X: 1}
	_, err := engine.AddComponent(holder, light)
	require.NoError(t, err)

	assertVec3(t, rl.Vector3{Y: 10}, light.WorldPosition())
	assertVec3(t, rl.Vector3{Z: -1}, light.WorldDirection())

	light.Intensity = 0.5
	assert.InDelta(t, 0.5, light.ColorFloat()[0], epsilon)
}

func TestCameraFollowsWorldMatrix(t *testing.T) {
	s := engine.NewScene("Cameras")
	rig := newObject(t, s, "Rig", s.Root())
	rig.Transform().SetPosition(rl.Vector3{Y: 2, Z: 5})
	eye := newObject(t, s, "Eye", rig)

	cam, err := engine.AddComponent(eye, NewCamera())
	require.NoError(t, err)

	c3d := cam.Camera3D()
	assertVec3(t, rl.Vector3{Y: 2, Z: 5}, c3d.Position)
	assertVec3(t, rl.Vector3{Y: 2, Z: 4}, c3d.Target)
	assertVec3(t, rl.Vector3{Y: 1}, c3d.Up)

	rig.Transform().SetRotation(rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2))
	c3d = cam.Camera3D()
	assertVec3(t, rl.Vector3{X: -1, Y: 2, Z: 5}, c3d.Target)
}

type fixedLook struct {
	engine.Script
}

func (f *fixedLook) GetLookDirection() (x, y, z float32) { return 1, 0, 0 }
func (f *fixedLook) GetEyeHeight() float32               { return 1.5 }

func TestCameraLookProvider(t *testing.T) {
	s := engine.NewScene("Look")
	player := newObject(t, s, "Player", s.Root())
	_, err := engine.AddComponent(player, &fixedLook{})
	require.NoError(t, err)

	// on the same object the eye height applies
	cam, err := engine.AddComponent(player, NewCamera())
	require.NoError(t, err)
	c3d := cam.Camera3D()
	assertVec3(t, rl.Vector3{Y: 1.5}, c3d.Position)
	assertVec3(t, rl.Vector3{X: 1, Y: 1.5}, c3d.Target)

	// on a child only the look direction is inherited
	head := newObject(t, s, "Head", player)
	head.Transform().SetPosition(rl.Vector3{Y: 1.8})
	headCam, err := engine.AddComponent(head, NewCamera())
	require.NoError(t, err)
	c3d = headCam.Camera3D()
	assertVec3(t, rl.Vector3{Y: 1.8}, c3d.Position)
	assertVec3(t, rl.Vector3{X: 1, Y: 1.8}, c3d.Target)
}

func TestMainCamera(t *testing.T) {
	s := engine.NewScene("Main")
	assert.Nil(t, MainCamera(s))

	a := newObject(t, s, "A", s.Root())
	b := newObject(t, s, "B", s.Root())
	first, _ := engine.AddComponent(a, NewCamera())
	assert.Same(t, first, MainCamera(s))

	main := NewCamera()
	main.IsMain = true
	_, _ = engine.AddComponent(b, main)
	assert.Same(t, main, MainCamera(s))
}

func TestRotator(t *testing.T) {
	obj := engine.NewSceneObject("Spinner")
	rot, err := engine.AddComponent(obj, &Rotator{Axis: rl.Vector3{Y: 1}, Speed: 90})
	require.NoError(t, err)

	rot.Update(1)
	assertVec3(t, rl.Vector3{X: -1}, obj.Transform().Forward())
}

func TestBobber(t *testing.T) {
	obj := engine.NewSceneObject("Bob")
	obj.Transform().SetPosition(rl.Vector3{X: 3})
	bob, err := engine.AddComponent(obj, &Bobber{Axis: rl.Vector3{Y: 1}, Amplitude: 2, Frequency: 0.25})
	require.NoError(t, err)
	obj.Start()

	bob.Update(1)
	assertVec3(t, rl.Vector3{X: 3, Y: 2}, obj.Transform().Position())

	bob.Update(1)
	assertVec3(t, rl.Vector3{X: 3}, obj.Transform().Position())
}

func TestTween(t *testing.T) {
	obj := engine.NewSceneObject("Mover")
	tw, err := engine.AddComponent(obj, &Tween{Target: rl.Vector3{X: 10}, Duration: 2, Ease: "linear"})
	require.NoError(t, err)
	obj.Start()

	tw.Update(1)
	assertVec3(t, rl.Vector3{X: 5}, obj.Transform().Position())
	assert.False(t, tw.Done())

	tw.Update(1)
	assertVec3(t, rl.Vector3{X: 10}, obj.Transform().Position())
	assert.True(t, tw.Done())

	tw.Update(1)
	assertVec3(t, rl.Vector3{X: 10}, obj.Transform().Position())
}

func TestTweenPingPong(t *testing.T) {
	obj := engine.NewSceneObject("Mover")
	tw, err := engine.AddComponent(obj, &Tween{Target: rl.Vector3{Z: 4}, Duration: 1, PingPong: true})
	require.NoError(t, err)
	obj.Start()

	tw.Update(1)
	assertVec3(t, rl.Vector3{Z: 4}, obj.Transform().Position())
	tw.Update(0.5)
	assertVec3(t, rl.Vector3{Z: 2}, obj.Transform().Position())
	assert.False(t, tw.Done())
	assert.Equal(t, rl.Vector3{Z: 4}, tw.Target, "configuration is not mutated")
}

func TestScriptRegistryRoundTrip(t *testing.T) {
	names := engine.RegisteredScripts()
	assert.Subset(t, names, []string{"Bobber", "LookAt", "Rotator", "Tween"})

	c, err := engine.CreateScript("Tween", map[string]any{
		"target":   []any{1.0, 2.0, 3.0},
		"duration": 0.5,
		"ease":     "outBounce",
	})
	require.NoError(t, err)
	tw, ok := c.(*Tween)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, tw.Target)
	assert.Equal(t, engine.KindScript, tw.Kind())

	name, props, ok := engine.SerializeScript(tw)
	require.True(t, ok)
	assert.Equal(t, "Tween", name)

	again, err := engine.CreateScript(name, props)
	require.NoError(t, err)
	assert.Equal(t, tw.Clone(), again)
}

func TestDuplicateClonesComponents(t *testing.T) {
	s := engine.NewScene("Dup")
	src := newObject(t, s, "Src", s.Root())
	mesh, _ := engine.AddComponent(src, NewMesh(MeshCube, rl.Blue, rl.Vector3{X: 1, Y: 1, Z: 1}))
	_, _ = engine.AddComponent(src, &Rotator{Axis: rl.Vector3{Y: 1}, Speed: 30})
	_, _ = engine.AddComponent(src, &Rotator{Axis: rl.Vector3{X: 1}, Speed: 10})

	dup, err := s.DuplicateObject(src.ID(), s.Root().ID())
	require.NoError(t, err)

	dupMesh, ok := engine.GetComponent[*Mesh](dup)
	require.True(t, ok)
	assert.NotSame(t, mesh, dupMesh)
	assert.Same(t, dup, dupMesh.Owner())
	assert.Equal(t, rl.Blue, dupMesh.Color)
	assert.Len(t, engine.GetComponents[*Rotator](dup), 2)
}

func TestLookAtSteersChildCamera(t *testing.T) {
	s := engine.NewScene("Look")
	box := newObject(t, s, "Box", s.Root())
	rig := newObject(t, s, "Rig", s.Root())
	rig.Transform().SetPosition(rl.Vector3{Z: 10})

	look, err := engine.CreateScript("LookAt", map[string]any{"target": "Box"})
	require.NoError(t, err)
	_, err = engine.AddComponent(rig, look)
	require.NoError(t, err)

	head := newObject(t, s, "Head", rig)
	head.Transform().SetPosition(rl.Vector3{Y: 2})
	cam, err := engine.AddComponent(head, NewCamera())
	require.NoError(t, err)

	s.Start()
	require.True(t, look.(*LookAt).Target.IsValid())

	c3d := cam.Camera3D()
	assertVec3(t, rl.Vector3{Y: 2, Z: 10}, c3d.Position)
	assertVec3(t, rl.Vector3{Y: 2, Z: 9}, c3d.Target)

	box.Transform().SetPosition(rl.Vector3{X: 10, Z: 10})
	c3d = cam.Camera3D()
	assertVec3(t, rl.Vector3{X: 1, Y: 2, Z: 10}, c3d.Target)

	// Without a target the rig's own forward is used
	require.NoError(t, s.RemoveObject(box.ID()))
	rig.Transform().SetRotation(rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, rl.Pi/2))
	c3d = cam.Camera3D()
	assertVec3(t, rl.Vector3{X: -1, Y: 2, Z: 10}, c3d.Target)

	name, props, ok := engine.SerializeScript(look)
	require.True(t, ok)
	assert.Equal(t, "LookAt", name)
	assert.Equal(t, "Box", props["target"])
}
