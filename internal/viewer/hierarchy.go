package viewer

import (
	"errors"
	"fmt"
	"log/slog"

	"scenegraph/internal/engine"
)

// ErrNoSelection is returned by hierarchy actions that need a selected object.
var ErrNoSelection = errors.New("nothing selected")

// Row is one line of the hierarchy panel.
type Row struct {
	Object *engine.SceneObject
	Depth  int
}

// hierarchyRows lists the scene in pre-order with each object's depth below
// the root.
func hierarchyRows(scene *engine.Scene) []Row {
	depth := map[engine.ObjectID]int{}
	rows := make([]Row, 0, scene.Len())
	scene.Walk(func(o *engine.SceneObject) bool {
		d := 0
		if p, err := scene.Parent(o.ID()); err == nil && p != nil {
			d = depth[p.ID()] + 1
		}
		depth[o.ID()] = d
		rows = append(rows, Row{Object: o, Depth: d})
		return true
	})
	return rows
}

// Hierarchy holds the editing state of the hierarchy panel: a selection and
// an optional object marked for reparenting. References are by ID so a
// removal or reload never leaves dangling pointers.
type Hierarchy struct {
	scene    *engine.Scene
	log      *slog.Logger
	Selected engine.ObjectRef
	Marked   engine.ObjectRef
	Status   string

	scroll int32
}

func NewHierarchy(scene *engine.Scene, log *slog.Logger) *Hierarchy {
	if log == nil {
		log = slog.Default()
	}
	return &Hierarchy{scene: scene, log: log}
}

// SetScene swaps the edited scene, keeping the selection if the new scene
// has an object of the same name.
func (h *Hierarchy) SetScene(scene *engine.Scene) {
	var selectedName string
	if o := h.Selected.Get(h.scene); o != nil {
		selectedName = o.Name
	}
	h.scene = scene
	h.Selected.Clear()
	h.Marked.Clear()
	if selectedName != "" {
		h.Selected.Set(scene.FindByName(selectedName))
	}
}

// Selection returns the selected object, or nil.
func (h *Hierarchy) Selection() *engine.SceneObject {
	return h.Selected.Get(h.scene)
}

func (h *Hierarchy) Select(o *engine.SceneObject) {
	h.Selected.Set(o)
}

// Mark remembers the selection as the object to move on the next Reparent.
func (h *Hierarchy) Mark() error {
	o := h.Selection()
	if o == nil {
		return ErrNoSelection
	}
	h.Marked.Set(o)
	h.setStatus("Marked %s", o.Name)
	return nil
}

// Reparent moves the marked object under the selection.
func (h *Hierarchy) Reparent() error {
	target := h.Selection()
	moved := h.Marked.Get(h.scene)
	if target == nil || moved == nil {
		return ErrNoSelection
	}
	if err := h.scene.MoveObject(moved.ID(), target.ID()); err != nil {
		h.setStatus("Cannot move %s under %s", moved.Name, target.Name)
		return err
	}
	h.Marked.Clear()
	h.setStatus("Moved %s under %s", moved.Name, target.Name)
	return nil
}

// Remove deletes the selected object and its subtree.
func (h *Hierarchy) Remove() error {
	o := h.Selection()
	if o == nil {
		return ErrNoSelection
	}
	if err := h.scene.RemoveObject(o.ID()); err != nil {
		h.setStatus("Cannot delete %s", o.Name)
		return err
	}
	h.Selected.Clear()
	if h.Marked.Get(h.scene) == nil {
		h.Marked.Clear()
	}
	h.setStatus("Deleted %s", o.Name)
	return nil
}

// Duplicate clones the selected subtree next to the original and selects
// the copy.
func (h *Hierarchy) Duplicate() (*engine.SceneObject, error) {
	o := h.Selection()
	if o == nil {
		return nil, ErrNoSelection
	}
	parent, err := h.scene.Parent(o.ID())
	if err != nil {
		return nil, err
	}
	if parent == nil {
		h.setStatus("Cannot duplicate %s", o.Name)
		return nil, engine.ErrRootObject
	}
	dup, err := h.scene.DuplicateObject(o.ID(), parent.ID())
	if err != nil {
		h.setStatus("Cannot duplicate %s", o.Name)
		return nil, err
	}
	h.Selected.Set(dup)
	h.setStatus("Duplicated %s", o.Name)
	return dup, nil
}

// AddChild creates an empty object under the selection, or under the root
// when nothing is selected.
func (h *Hierarchy) AddChild() (*engine.SceneObject, error) {
	parent := h.Selection()
	if parent == nil {
		parent = h.scene.Root()
	}
	name := h.uniqueName("Object")
	o, err := h.scene.NewObject(name, parent.ID())
	if err != nil {
		return nil, err
	}
	h.Selected.Set(o)
	h.setStatus("Created %s", name)
	return o, nil
}

func (h *Hierarchy) uniqueName(base string) string {
	name := base
	for count := 1; h.scene.FindByName(name) != nil; count++ {
		name = fmt.Sprintf("%s (%d)", base, count)
	}
	return name
}

func (h *Hierarchy) setStatus(format string, args ...any) {
	h.Status = fmt.Sprintf(format, args...)
	h.log.Debug("hierarchy", "status", h.Status)
}
