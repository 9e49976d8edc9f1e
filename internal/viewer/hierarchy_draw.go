package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hierarchyItemH   = int32(22)
	hierarchyHeaderH = int32(28)
	hierarchyFooterH = int32(108)
)

// Draw renders the panel on the left edge and applies any clicked action.
// It reports whether the mouse is over the panel.
func (h *Hierarchy) Draw(width int32) bool {
	panelH := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, width, panelH, colorBgPanel)
	rl.DrawRectangle(width-2, 0, 2, panelH, colorBorder)
	rl.DrawText("Hierarchy", 12, 8, 18, colorTextSecondary)

	mouse := rl.GetMousePosition()
	mouseIn := mouse.X >= 0 && mouse.X <= float32(width) && mouse.Y <= float32(panelH)

	rows := hierarchyRows(h.scene)
	listTop := hierarchyHeaderH
	listH := panelH - listTop - hierarchyFooterH

	if mouseIn {
		h.scroll -= int32(rl.GetMouseWheelMove() * 20)
	}
	maxScroll := max(int32(len(rows))*hierarchyItemH-listH, 0)
	h.scroll = min(max(h.scroll, 0), maxScroll)

	selected := h.Selection()
	marked := h.Marked.Get(h.scene)

	rl.BeginScissorMode(0, listTop, width, listH)
	for i, row := range rows {
		y := listTop + int32(i)*hierarchyItemH - h.scroll
		if y+hierarchyItemH < listTop || y > listTop+listH {
			continue
		}
		hovered := mouseIn && mouse.Y >= float32(y) && mouse.Y < float32(y+hierarchyItemH) &&
			mouse.Y >= float32(listTop) && mouse.Y < float32(listTop+listH)

		switch {
		case row.Object == selected:
			rl.DrawRectangle(0, y, width, hierarchyItemH, colorSelection)
			rl.DrawRectangle(0, y, 3, hierarchyItemH, colorAccent)
		case hovered:
			rl.DrawRectangle(0, y, width, hierarchyItemH, colorBgHover)
		}
		if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			h.Select(row.Object)
		}

		txt := colorTextSecondary
		switch {
		case row.Object == marked:
			txt = colorAccent
		case row.Object == selected:
			txt = colorAccentLight
		case !row.Object.Enabled:
			txt = colorTextMuted
		}
		name := row.Object.Name
		if n := len(row.Object.Components()); n > 0 {
			name = fmt.Sprintf("%s [%d]", name, n)
		}
		rl.DrawText(name, 12+int32(row.Depth)*16, y+4, 15, txt)
	}
	rl.EndScissorMode()

	h.drawActions(width, panelH-hierarchyFooterH)
	return mouseIn
}

func (h *Hierarchy) drawActions(width, top int32) {
	w := float32(width-24) / 2
	x0, x1 := float32(8), float32(8)+w+8
	y := float32(top) + 4

	if gui.Button(rl.Rectangle{X: x0, Y: y, Width: w, Height: 22}, "+ Child") {
		_, _ = h.AddChild()
	}
	if gui.Button(rl.Rectangle{X: x1, Y: y, Width: w, Height: 22}, "Duplicate") {
		_, _ = h.Duplicate()
	}
	y += 26
	if gui.Button(rl.Rectangle{X: x0, Y: y, Width: w, Height: 22}, "Mark") {
		_ = h.Mark()
	}
	if gui.Button(rl.Rectangle{X: x1, Y: y, Width: w, Height: 22}, "Move here") {
		_ = h.Reparent()
	}
	y += 26
	if o := h.Selection(); o != nil {
		o.Enabled = gui.CheckBox(rl.Rectangle{X: x0, Y: y + 4, Width: 14, Height: 14}, "Enabled", o.Enabled)
	}
	if gui.Button(rl.Rectangle{X: x1, Y: y, Width: w, Height: 22}, "Delete") {
		_ = h.Remove()
	}
	if h.Status != "" {
		gui.Label(rl.Rectangle{X: x0, Y: y + 26, Width: float32(width) - 16, Height: 20}, h.Status)
	}
}
