package engine

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownScript is returned by CreateScript for unregistered names.
var ErrUnknownScript = errors.New("unknown script")

// Script is the base for gameplay script components. Embed it instead of
// BaseComponent to get KindScript.
type Script struct {
	BaseComponent
}

// Kind implements Component.
func (s *Script) Kind() ComponentKind { return KindScript }

// ScriptFactory creates a script component from scene-file props.
type ScriptFactory func(props map[string]any) Component

// ScriptSerializer converts a component back to props. It returns nil for
// components it does not handle.
type ScriptSerializer func(c Component) map[string]any

type scriptEntry struct {
	factory    ScriptFactory
	serializer ScriptSerializer
}

var scriptRegistry = map[string]scriptEntry{}

// RegisterScript registers a named script with a factory and optional
// serializer. Registering a name twice panics.
func RegisterScript(name string, factory ScriptFactory, serializer ScriptSerializer) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = scriptEntry{factory: factory, serializer: serializer}
}

// CreateScript builds the named script with props.
func CreateScript(name string, props map[string]any) (Component, error) {
	entry, ok := scriptRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScript, name)
	}
	c := entry.factory(props)
	if c == nil {
		return nil, fmt.Errorf("script %q: factory returned nil", name)
	}
	return c, nil
}

// SerializeScript asks every registered serializer for c's props.
// It returns false when none recognizes the component.
func SerializeScript(c Component) (string, map[string]any, bool) {
	for _, name := range RegisteredScripts() {
		entry := scriptRegistry[name]
		if entry.serializer == nil {
			continue
		}
		if props := entry.serializer(c); props != nil {
			return name, props, true
		}
	}
	return "", nil, false
}

// RegisteredScripts returns all registered script names, sorted.
func RegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
