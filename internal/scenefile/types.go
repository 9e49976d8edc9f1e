package scenefile

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- File types ---

type SceneFile struct {
	Name    string      `json:"name" yaml:"name"`
	Objects []ObjectDef `json:"objects" yaml:"objects"`
}

type ObjectDef struct {
	Name       string         `json:"name" yaml:"name"`
	Tags       []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Disabled   bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Position   [3]float32     `json:"position" yaml:"position,flow"`
	Rotation   [3]float32     `json:"rotation" yaml:"rotation,flow"` // euler degrees
	Scale      [3]float32     `json:"scale" yaml:"scale,flow"`
	Components []ComponentDef `json:"components,omitempty" yaml:"components,omitempty"`
	Children   []ObjectDef    `json:"children,omitempty" yaml:"children,omitempty"`
}

// ComponentDef is a tagged union keyed by Type. Only the fields of the
// matching kind are read.
type ComponentDef struct {
	Type string `json:"type" yaml:"type"`

	// Mesh
	Shape string    `json:"shape,omitempty" yaml:"shape,omitempty"`
	Size  []float32 `json:"size,omitempty" yaml:"size,omitempty,flow"`
	Color string    `json:"color,omitempty" yaml:"color,omitempty"`

	// Light
	Light     string    `json:"light,omitempty" yaml:"light,omitempty"`
	Direction []float32 `json:"direction,omitempty" yaml:"direction,omitempty,flow"`
	Intensity float32   `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Radius    float32   `json:"radius,omitempty" yaml:"radius,omitempty"`

	// Camera
	FOV          float32 `json:"fov,omitempty" yaml:"fov,omitempty"`
	Near         float32 `json:"near,omitempty" yaml:"near,omitempty"`
	Far          float32 `json:"far,omitempty" yaml:"far,omitempty"`
	Orthographic bool    `json:"orthographic,omitempty" yaml:"orthographic,omitempty"`
	IsMain       bool    `json:"isMain,omitempty" yaml:"isMain,omitempty"`

	// Script
	Name  string         `json:"name,omitempty" yaml:"name,omitempty"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

const (
	typeMesh   = "Mesh"
	typeLight  = "Light"
	typeCamera = "Camera"
	typeScript = "Script"
)

// Format selects the encoding of a scene file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks the format by file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// lookupColor accepts a palette name or #rrggbbaa. Unknown names are white.
func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	var c rl.Color
	if _, err := fmt.Sscanf(name, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err == nil {
		return c
	}
	return rl.White
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func array3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
