package scenefile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"scenegraph/internal/components"
	"scenegraph/internal/engine"
)

// Save writes scene to path, choosing the format by extension.
func Save(scene *engine.Scene, path string) error {
	data, err := Encode(scene, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Encode serializes scene. The root object itself is implicit; its
// children become the top-level objects.
func Encode(scene *engine.Scene, format Format) ([]byte, error) {
	sf, err := Describe(scene)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(sf)
	default:
		data, err = json.MarshalIndent(sf, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

// Describe converts a live scene into its file representation.
func Describe(scene *engine.Scene) (*SceneFile, error) {
	sf := &SceneFile{Name: scene.Name}
	objects, err := describeChildren(scene, scene.Root())
	if err != nil {
		return nil, err
	}
	sf.Objects = objects
	return sf, nil
}

func describeChildren(scene *engine.Scene, parent *engine.SceneObject) ([]ObjectDef, error) {
	children, err := scene.Children(parent.ID())
	if err != nil {
		return nil, fmt.Errorf("describe %q: %w", parent.Name, err)
	}
	var defs []ObjectDef
	for _, g := range children {
		def, err := describeObject(scene, g)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func describeObject(scene *engine.Scene, g *engine.SceneObject) (ObjectDef, error) {
	t := g.Transform()
	euler := rl.QuaternionToEuler(t.Rotation())
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Disabled: !g.Enabled,
		Position: array3(t.Position()),
		Rotation: array3(rl.Vector3Scale(euler, rl.Rad2deg)),
		Scale:    array3(t.Scale()),
	}
	for _, c := range g.Components() {
		if cd, ok := describeComponent(c); ok {
			def.Components = append(def.Components, cd)
		} else {
			slog.Warn("component not serializable, skipped", "object", g.Name, "kind", c.Kind())
		}
	}
	children, err := describeChildren(scene, g)
	if err != nil {
		return def, err
	}
	def.Children = children
	return def, nil
}

func describeComponent(c engine.Component) (ComponentDef, bool) {
	switch comp := c.(type) {
	case *components.Mesh:
		return ComponentDef{
			Type:  typeMesh,
			Shape: comp.Shape.String(),
			Size:  []float32{comp.Size.X, comp.Size.Y, comp.Size.Z},
			Color: lookupColorName(comp.Color),
		}, true

	case *components.Light:
		return ComponentDef{
			Type:      typeLight,
			Light:     comp.Type.String(),
			Color:     lookupColorName(comp.Color),
			Direction: []float32{comp.Direction.X, comp.Direction.Y, comp.Direction.Z},
			Intensity: comp.Intensity,
			Radius:    comp.Radius,
		}, true

	case *components.Camera:
		return ComponentDef{
			Type:         typeCamera,
			FOV:          comp.FOV,
			Near:         comp.Near,
			Far:          comp.Far,
			Orthographic: comp.Projection == rl.CameraOrthographic,
			IsMain:       comp.IsMain,
		}, true
	}

	// Try script registry
	if name, props, ok := engine.SerializeScript(c); ok {
		return ComponentDef{Type: typeScript, Name: name, Props: props}, true
	}
	return ComponentDef{}, false
}
