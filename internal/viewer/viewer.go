// Package viewer is an interactive raylib window for scene files: it draws
// the frustum-culled scene, edits the hierarchy and reloads the file when it
// changes on disk.
package viewer

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/components"
	"scenegraph/internal/engine"
	"scenegraph/internal/scenefile"
)

// Writes we make ourselves are not reloaded within this window.
const selfWriteGrace = time.Second

type Viewer struct {
	cfg Config
	log *slog.Logger

	scene     *engine.Scene
	culler    *Culler
	renderer  *Renderer
	hierarchy *Hierarchy
	watcher   *sceneWatcher

	freeCamera rl.Camera3D
	paused     bool
	savedAt    time.Time

	visible int
	tested  int
}

func New(cfg Config, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	return &Viewer{
		cfg:      cfg,
		log:      log,
		renderer: NewRenderer(cfg.ShowBounds),
		freeCamera: rl.Camera3D{
			Position:   rl.Vector3{X: 8, Y: 6, Z: 8},
			Target:     rl.Vector3{},
			Up:         rl.Vector3{Y: 1},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
	}
}

// Scene returns the scene being viewed.
func (v *Viewer) Scene() *engine.Scene { return v.scene }

// Load reads the configured scene file and starts it.
func (v *Viewer) Load() error {
	scene, err := scenefile.Load(v.cfg.Scene, engine.WithLogger(v.log))
	if err != nil {
		return err
	}
	scene.Start()
	v.setScene(scene)
	v.log.Info("scene loaded", "path", v.cfg.Scene, "name", scene.Name, "objects", scene.Len())
	return nil
}

// Reload replaces the scene with the file's current contents. A file that
// fails to load leaves the current scene in place.
func (v *Viewer) Reload() error {
	if err := v.Load(); err != nil {
		v.log.Warn("reload failed, keeping current scene", "path", v.cfg.Scene, "err", err)
		return err
	}
	return nil
}

// Save writes the current scene back to the scene file.
func (v *Viewer) Save() error {
	if v.scene == nil {
		return nil
	}
	if err := scenefile.Save(v.scene, v.cfg.Scene); err != nil {
		return err
	}
	v.savedAt = time.Now()
	v.log.Info("scene saved", "path", v.cfg.Scene)
	return nil
}

func (v *Viewer) setScene(scene *engine.Scene) {
	v.scene = scene
	if v.hierarchy == nil {
		v.hierarchy = NewHierarchy(scene, v.log)
	} else {
		v.hierarchy.SetScene(scene)
	}
}

// Tick advances the scene unless paused and applies a pending file change.
func (v *Viewer) Tick(deltaTime float32) {
	v.pollReload()
	if !v.paused && v.scene != nil {
		v.scene.Update(deltaTime)
	}
}

func (v *Viewer) pollReload() {
	if v.watcher == nil {
		return
	}
	select {
	case <-v.watcher.Changed():
		if time.Since(v.savedAt) < selfWriteGrace {
			return
		}
		_ = v.Reload()
	default:
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(v.cfg.Width, v.cfg.Height, v.cfg.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(v.cfg.TargetFPS)
	rl.SetExitKey(0)
	initRayguiStyle()

	bounds, release := newBoundsTransformer(v.cfg, v.log)
	defer release()
	v.culler = NewCuller(bounds, v.log)

	if err := v.Load(); err != nil {
		return fmt.Errorf("open scene: %w", err)
	}
	if v.cfg.HotReload {
		w, err := watchScene(v.cfg.Scene, v.log)
		if err != nil {
			v.log.Warn("hot reload disabled", "err", err)
		} else {
			v.watcher = w
			defer w.Close()
		}
	}

	for !rl.WindowShouldClose() {
		v.handleInput()
		v.Tick(rl.GetFrameTime())
		v.draw()
	}
	return nil
}

func (v *Viewer) handleInput() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		v.paused = !v.paused
	case rl.IsKeyPressed(rl.KeyB):
		v.renderer.ShowBounds = !v.renderer.ShowBounds
	case rl.IsKeyPressed(rl.KeyF5):
		_ = v.Reload()
	case ctrl && rl.IsKeyPressed(rl.KeyS):
		if err := v.Save(); err != nil {
			v.log.Error("save failed", "err", err)
		}
	case rl.IsKeyPressed(rl.KeyDelete):
		_ = v.hierarchy.Remove()
	}
}

func (v *Viewer) camera() (rl.Camera3D, float32, float32) {
	if cam := components.MainCamera(v.scene); cam != nil && cam.Owner().Enabled {
		return cam.Camera3D(), cam.Near, cam.Far
	}
	mouse := rl.GetMousePosition()
	if mouse.X > float32(v.cfg.PanelWidth) && rl.IsMouseButtonDown(rl.MouseRightButton) {
		rl.UpdateCamera(&v.freeCamera, rl.CameraFree)
	}
	return v.freeCamera, 0.1, 1000
}

func (v *Viewer) draw() {
	cam, near, far := v.camera()
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))
	frustum := ExtractFrustum(cam, aspect, near, far)

	var visible []VisibleMesh
	visible, v.tested = v.culler.Cull(v.scene, &frustum)
	v.visible = len(visible)
	lights := engine.ComponentsInScene[*components.Light](v.scene)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(30, 30, 40, 255))

	rl.BeginMode3D(cam)
	v.renderer.Draw(visible, lights, v.hierarchy.Selection())
	rl.EndMode3D()

	v.hierarchy.Draw(v.cfg.PanelWidth)
	v.drawStatus()

	rl.EndDrawing()
}

func (v *Viewer) drawStatus() {
	x := v.cfg.PanelWidth + 10
	stats := v.scene.Stats()
	rl.DrawFPS(x, 10)
	rl.DrawText(fmt.Sprintf("%s  |  %d objects  |  drawn %d/%d", v.scene.Name, v.scene.Len(), v.visible, v.tested), x, 32, 16, colorTextSecondary)
	rl.DrawText(fmt.Sprintf("matrix reads %d  recomputed %d", stats.Reads, stats.Recomputed), x, 52, 14, colorTextMuted)
	if v.paused {
		rl.DrawText("PAUSED", x, 72, 16, colorAccentLight)
	}
	rl.DrawText("Space: pause  B: bounds  F5: reload  Ctrl+S: save  RMB: fly", x, int32(rl.GetScreenHeight())-24, 14, colorTextMuted)
}
