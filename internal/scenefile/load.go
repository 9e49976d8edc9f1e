// Package scenefile reads and writes hierarchical scene descriptions in
// JSON or YAML.
package scenefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"scenegraph/internal/components"
	"scenegraph/internal/engine"
)

// ErrUnknownComponent is returned for component entries whose type is not
// recognized.
var ErrUnknownComponent = errors.New("unknown component type")

// Load reads a scene file, choosing the format by extension.
func Load(path string, opts ...engine.Option) (*engine.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Decode(data, FormatFromPath(path), opts...)
}

// Decode builds a scene from encoded data.
func Decode(data []byte, format Format, opts ...engine.Option) (*engine.Scene, error) {
	var sf SceneFile
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &sf)
	default:
		err = json.Unmarshal(data, &sf)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return Build(&sf, opts...)
}

// Build instantiates a parsed scene file.
func Build(sf *SceneFile, opts ...engine.Option) (*engine.Scene, error) {
	name := sf.Name
	if name == "" {
		name = "Scene"
	}
	scene := engine.NewScene(name, opts...)
	for i := range sf.Objects {
		if err := buildObject(scene, &sf.Objects[i], scene.Root().ID()); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

func buildObject(scene *engine.Scene, def *ObjectDef, parent engine.ObjectID) error {
	g := engine.NewSceneObject(def.Name)
	g.Tags = def.Tags
	g.Enabled = !def.Disabled

	// Default scale to 1 if zero
	scale := vec3(def.Scale)
	if def.Scale == [3]float32{} {
		scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	rotation := rl.QuaternionFromEuler(
		def.Rotation[0]*rl.Deg2rad,
		def.Rotation[1]*rl.Deg2rad,
		def.Rotation[2]*rl.Deg2rad,
	)
	*g.Transform() = engine.NewTransformWith(vec3(def.Position), rotation, scale)

	for i := range def.Components {
		c, err := buildComponent(&def.Components[i])
		if err != nil {
			return fmt.Errorf("object %q: %w", def.Name, err)
		}
		if _, err := engine.AddComponent(g, c); err != nil {
			return fmt.Errorf("object %q: %w", def.Name, err)
		}
	}

	if err := scene.RegisterObject(g, parent); err != nil {
		return fmt.Errorf("object %q: %w", def.Name, err)
	}
	for i := range def.Children {
		if err := buildObject(scene, &def.Children[i], g.ID()); err != nil {
			return err
		}
	}
	return nil
}

func buildComponent(def *ComponentDef) (engine.Component, error) {
	switch def.Type {
	case typeMesh:
		return buildMesh(def)
	case typeLight:
		return buildLight(def), nil
	case typeCamera:
		return buildCamera(def), nil
	case typeScript:
		return engine.CreateScript(def.Name, def.Props)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, def.Type)
}

func buildMesh(def *ComponentDef) (engine.Component, error) {
	shape, err := components.ParseMeshShape(def.Shape)
	if err != nil {
		return nil, err
	}
	size := rl.Vector3{X: 1, Y: 1, Z: 1}
	switch len(def.Size) {
	case 0:
	case 1:
		size = rl.Vector3{X: def.Size[0], Y: def.Size[0], Z: def.Size[0]}
	case 2:
		size = rl.Vector3{X: def.Size[0], Z: def.Size[1]}
	default:
		size = rl.Vector3{X: def.Size[0], Y: def.Size[1], Z: def.Size[2]}
	}
	return components.NewMesh(shape, lookupColor(def.Color), size), nil
}

func buildLight(def *ComponentDef) engine.Component {
	light := components.NewDirectionalLight()
	if def.Light == components.LightPoint.String() {
		light = components.NewPointLight()
	}
	if def.Color != "" {
		light.Color = lookupColor(def.Color)
	}
	if len(def.Direction) == 3 {
		light.Direction = rl.Vector3Normalize(rl.Vector3{X: def.Direction[0], Y: def.Direction[1], Z: def.Direction[2]})
	}
	if def.Intensity > 0 {
		light.Intensity = def.Intensity
	}
	if def.Radius > 0 {
		light.Radius = def.Radius
	}
	return light
}

func buildCamera(def *ComponentDef) engine.Component {
	cam := components.NewCamera()
	if def.FOV > 0 {
		cam.FOV = def.FOV
	}
	if def.Near > 0 {
		cam.Near = def.Near
	}
	if def.Far > 0 {
		cam.Far = def.Far
	}
	if def.Orthographic {
		cam.Projection = rl.CameraOrthographic
	}
	cam.IsMain = def.IsMain
	return cam
}
