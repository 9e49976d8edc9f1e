package scenefile

import (
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegraph/internal/components"
	"scenegraph/internal/engine"
)

const demoJSON = `{
  "name": "Demo",
  "objects": [
    {
      "name": "Sun",
      "position": [0, 10, 0],
      "components": [{"type": "Light", "light": "directional", "direction": [0, -1, 0], "intensity": 0.8}]
    },
    {
      "name": "Carousel",
      "tags": ["spin"],
      "position": [2, 0, 0],
      "rotation": [0, 30, 0],
      "components": [
        {"type": "Script", "name": "Rotator", "props": {"speed": 45}}
      ],
      "children": [
        {
          "name": "Horse",
          "position": [1, 0, 0],
          "scale": [2, 2, 2],
          "components": [
            {"type": "Mesh", "shape": "cube", "size": [1, 2, 1], "color": "#102030ff"},
            {"type": "Script", "name": "Bobber", "props": {"amplitude": 0.25}}
          ]
        }
      ]
    },
    {
      "name": "Eye",
      "disabled": true,
      "position": [0, 2, 8],
      "components": [{"type": "Camera", "fov": 60, "isMain": true}]
    }
  ]
}`

func names(s *engine.Scene) []string {
	var out []string
	for _, o := range s.Objects() {
		out = append(out, o.Name)
	}
	return out
}

func matrixValues(m rl.Matrix) []float32 {
	return []float32{
		m.M0, m.M1, m.M2, m.M3,
		m.M4, m.M5, m.M6, m.M7,
		m.M8, m.M9, m.M10, m.M11,
		m.M12, m.M13, m.M14, m.M15,
	}
}

func TestDecodeBuildsHierarchy(t *testing.T) {
	s, err := Decode([]byte(demoJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Demo", s.Name)
	assert.Equal(t, []string{"Demo", "Sun", "Carousel", "Horse", "Eye"}, names(s))

	horse := s.FindByName("Horse")
	require.NotNil(t, horse)
	parent, err := s.Parent(horse.ID())
	require.NoError(t, err)
	assert.Equal(t, "Carousel", parent.Name)

	mesh, ok := engine.GetComponent[*components.Mesh](horse)
	require.True(t, ok)
	assert.Equal(t, components.MeshCube, mesh.Shape)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 1}, mesh.Size)
	assert.Equal(t, rl.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, mesh.Color)

	bob, ok := engine.GetComponent[*components.Bobber](horse)
	require.True(t, ok)
	assert.Equal(t, float32(0.25), bob.Amplitude)

	eye := s.FindByName("Eye")
	assert.False(t, eye.Enabled)
	cam, ok := engine.GetComponent[*components.Camera](eye)
	require.True(t, ok)
	assert.True(t, cam.IsMain)
	assert.Equal(t, float32(60), cam.FOV)

	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, s.FindByName("Sun").Transform().Scale(), "zero scale defaults to one")
	assert.Equal(t, []*engine.SceneObject{s.FindByName("Carousel")}, s.FindByTag("spin"))
}

func TestDecodedWorldMatrices(t *testing.T) {
	s, err := Decode([]byte(demoJSON), FormatJSON)
	require.NoError(t, err)

	horse := s.FindByName("Horse")
	pos, err := s.WorldPosition(horse.ID())
	require.NoError(t, err)

	// (1,0,0) yawed by 30 degrees, then offset by the carousel
	want := rl.Vector3{X: 2 + 0.8660254, Z: -0.5}
	assert.InDelta(t, want.X, pos.X, 1e-4)
	assert.InDelta(t, want.Y, pos.Y, 1e-4)
	assert.InDelta(t, want.Z, pos.Z, 1e-4)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			src, err := Decode([]byte(demoJSON), FormatJSON)
			require.NoError(t, err)

			data, err := Encode(src, format)
			require.NoError(t, err)
			dst, err := Decode(data, format)
			require.NoError(t, err)

			assert.Equal(t, names(src), names(dst))
			srcObjects, dstObjects := src.Objects(), dst.Objects()
			for i := range srcObjects {
				a, b := srcObjects[i], dstObjects[i]
				assert.Equal(t, a.Tags, b.Tags, a.Name)
				assert.Equal(t, a.Enabled, b.Enabled, a.Name)
				assert.Len(t, b.Components(), len(a.Components()), a.Name)

				am, err := src.WorldModelMatrix(a.ID())
				require.NoError(t, err)
				bm, err := dst.WorldModelMatrix(b.ID())
				require.NoError(t, err)
				assert.InDeltaSlice(t, matrixValues(am), matrixValues(bm), 1e-4, a.Name)
			}

			rot, ok := engine.GetComponent[*components.Rotator](dst.FindByName("Carousel"))
			require.True(t, ok)
			assert.Equal(t, float32(45), rot.Speed)
			assert.Equal(t, rl.Vector3{Y: 1}, rot.Axis)

			light, ok := engine.GetComponent[*components.Light](dst.FindByName("Sun"))
			require.True(t, ok)
			assert.Equal(t, components.LightDirectional, light.Type)
			assert.Equal(t, float32(0.8), light.Intensity)
		})
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(src, []byte(demoJSON), 0644))

	s, err := Load(src)
	require.NoError(t, err)

	out := filepath.Join(dir, "demo.yaml")
	require.NoError(t, Save(s, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Carousel")

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, names(s), names(reloaded))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"objects": [`},
		{"unknown component", `{"objects": [{"name": "A", "components": [{"type": "Teleporter"}]}]}`},
		{"unknown script", `{"objects": [{"name": "A", "components": [{"type": "Script", "name": "Nope"}]}]}`},
		{"unknown shape", `{"objects": [{"name": "A", "components": [{"type": "Mesh", "shape": "torus"}]}]}`},
		{"two cameras", `{"objects": [{"name": "A", "components": [{"type": "Camera"}, {"type": "Camera"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			assert.Error(t, err)
		})
	}

	_, err := Decode([]byte(`{"objects": [{"name": "A", "components": [{"type": "Teleporter"}]}]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrUnknownComponent)
	_, err = Decode([]byte(`{"objects": [{"name": "A", "components": [{"type": "Camera"}, {"type": "Camera"}]}]}`), FormatJSON)
	assert.ErrorIs(t, err, engine.ErrDuplicateComponent)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("level.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("LEVEL.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("level.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("level"))
}

func TestColorNames(t *testing.T) {
	assert.Equal(t, rl.Red, lookupColor("Red"))
	assert.Equal(t, "Red", lookupColorName(rl.Red))
	custom := rl.Color{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, custom, lookupColor(lookupColorName(custom)))
	assert.Equal(t, rl.White, lookupColor("nonsense"))
}

func TestShippedDemoSceneLoads(t *testing.T) {
	scene, err := Load(filepath.Join("..", "..", "assets", "scenes", "demo.json"))
	require.NoError(t, err)
	assert.Equal(t, "Demo", scene.Name)
	assert.Len(t, scene.FindByTag("ride"), 2)

	horse := scene.FindByName("Horse")
	require.NotNil(t, horse)
	pos, err := scene.WorldPosition(horse.ID())
	require.NoError(t, err)
	assert.InDelta(t, 4.5, pos.X, 1e-4)
	assert.InDelta(t, 0.5, pos.Y, 1e-4)
}
