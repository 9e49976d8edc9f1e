package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

const scriptsDir = "internal/components"

const scriptTemplate = `package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/engine"
)

type {{.Name}} struct {
	engine.Script
	Speed float32
}

func (s *{{.Name}}) Update(deltaTime float32) {
	g := s.Owner()
	if g == nil {
		return
	}
	g.Transform().Translate(rl.Vector3{Y: s.Speed * deltaTime})
}

func (s *{{.Name}}) Clone() engine.Component {
	return &{{.Name}}{Speed: s.Speed}
}

func init() {
	engine.RegisterScript("{{.Name}}", {{.Lower}}Factory, {{.Lower}}Serializer)
}

func {{.Lower}}Factory(props map[string]any) engine.Component {
	return &{{.Name}}{Speed: propFloat(props, "speed", 1)}
}

func {{.Lower}}Serializer(c engine.Component) map[string]any {
	s, ok := c.(*{{.Name}})
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": float64(s.Speed),
	}
}
`

var errScriptName = errors.New("script name must start with an uppercase letter")

func newNewScriptCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "newscript <ScriptName>",
		Short: "Scaffold a registered script component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := newScript(dir, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", path)
			fmt.Fprintf(out, "Script %q registered. Add it to a scene object:\n\n", args[0])
			fmt.Fprintf(out, "  {\"type\": \"Script\", \"name\": %q, \"props\": {\"speed\": 1.0}}\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", scriptsDir, "package directory to write into")
	return cmd
}

// newScript writes the scaffold for name into dir and returns its path.
func newScript(dir, name string) (string, error) {
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return "", errScriptName
	}
	lower := string(unicode.ToLower(rune(name[0]))) + name[1:]
	path := filepath.Join(dir, toSnakeCase(name)+".go")

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	content := scriptTemplate
	content = strings.ReplaceAll(content, "{{.Name}}", name)
	content = strings.ReplaceAll(content, "{{.Lower}}", lower)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	return path, nil
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
