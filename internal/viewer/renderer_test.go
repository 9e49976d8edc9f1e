package viewer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegraph/internal/components"
	"scenegraph/internal/engine"
)

func TestLightLevel(t *testing.T) {
	assert.InDelta(t, ambient, lightLevel(nil), 1e-6)

	s := engine.NewScene("Lights")
	sun, err := s.NewObject("Sun", s.Root().ID())
	require.NoError(t, err)
	half := components.NewDirectionalLight()
	half.Intensity = 0.5
	_, err = engine.AddComponent(sun, half)
	require.NoError(t, err)

	lamp, err := s.NewObject("Lamp", s.Root().ID())
	require.NoError(t, err)
	point := components.NewPointLight()
	_, err = engine.AddComponent(lamp, point)
	require.NoError(t, err)

	lights := []*components.Light{half, point}
	assert.InDelta(t, ambient+(1-ambient)*0.5, lightLevel(lights), 1e-6)

	sun.Enabled = false
	assert.InDelta(t, ambient, lightLevel(lights), 1e-6)

	sun.Enabled = true
	half.Intensity = 4
	assert.InDelta(t, 1, lightLevel(lights), 1e-6)
}

func TestShade(t *testing.T) {
	c := shade(rl.NewColor(200, 100, 50, 128), 0.5)
	assert.Equal(t, rl.NewColor(100, 50, 25, 128), c)
}
