package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

var (
	hudColor  = render.RGB{R: 0xc0, G: 0xc0, B: 0xc0}
	helpColor = render.RGB{R: 0x80, G: 0xa0, B: 0xff}
)

// terminalUI translates tcell events into queued input and draws frames onto cells
type terminalUI struct {
	buf      *render.CellBuffer
	raster   *render.Rasterizer
	bindings input.Bindings
	queue    *input.Queue
	tilt     float64

	dragging bool
	showHelp bool
}

func newTerminalUI(width, height int, bindings input.Bindings, queue *input.Queue, tilt float64, bg render.RGB) *terminalUI {
	r := render.NewRasterizer()
	r.Background = bg
	return &terminalUI{
		buf:      render.NewCellBuffer(width, height),
		raster:   r,
		bindings: bindings,
		queue:    queue,
		tilt:     tilt,
	}
}

// projection returns the view projection for the current cell grid
func (u *terminalUI) projection() mgl64.Mat4 {
	return scene.Projection(render.ViewAspect(u.buf), u.tilt)
}

// handleEvent maps one tcell event; returns true when the viewport changed
func (u *terminalUI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		u.buf.Resize(w, h)
		return true
	}
	return false
}

func (u *terminalUI) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		u.queue.Push(input.CommandEvent(input.CommandQuit))
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if r == '?' || r == 'h' {
		u.showHelp = !u.showHelp
		return
	}
	if cmd, ok := u.bindings.Lookup(r); ok {
		u.queue.Push(input.CommandEvent(cmd))
	}
}

// handleMouse turns button-1 drags into pointer events
// Positions are cell centers over the cell grid as the viewport
func (u *terminalUI) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	w, h := u.buf.Size()
	x, y := float64(cx)+0.5, float64(cy)+0.5
	fw, fh := float64(w), float64(h)

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !u.dragging:
		u.dragging = true
		u.queue.Push(input.PointerDown(x, y, fw, fh))
	case pressed && u.dragging:
		u.queue.Push(input.PointerMove(x, y, fw, fh))
	case !pressed && u.dragging:
		u.dragging = false
		u.queue.Push(input.PointerUp(x, y, fw, fh))
	}
}

// draw rasterizes f with the HUD overlaid and flushes to screen
func (u *terminalUI) draw(screen tcell.Screen, f *scene.Frame) {
	u.raster.Draw(u.buf, f)
	u.drawHUD(f)
	u.buf.Flush(screen)
	screen.Show()
}

func (u *terminalUI) drawHUD(f *scene.Frame) {
	_, h := u.buf.Size()
	if f.ShowDay {
		u.buf.DrawText(1, 0, f.DayLabel, hudColor)
	}

	var flags []string
	if !f.Animating {
		flags = append(flags, "paused")
	}
	if f.Lighting {
		flags = append(flags, "lit")
	}
	if f.Sound {
		flags = append(flags, "sound")
	}
	status := fmt.Sprintf("%g d/frame", f.DPF)
	if len(flags) > 0 {
		status += "  " + strings.Join(flags, " ")
	}
	u.buf.DrawText(1, h-1, status+"  ? help", hudColor)

	if u.showHelp {
		for i, line := range helpLines(u.bindings) {
			u.buf.DrawText(1, 2+i, line, helpColor)
		}
	}
}

// helpLines lists bound keys grouped by command in command order
func helpLines(b input.Bindings) []string {
	keys := make(map[input.Command][]string)
	for r, cmd := range b {
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		keys[cmd] = append(keys[cmd], name)
	}

	var lines []string
	for cmd := input.CommandToggleAnimation; cmd <= input.CommandQuit; cmd++ {
		ks := keys[cmd]
		if len(ks) == 0 {
			continue
		}
		sort.Strings(ks)
		lines = append(lines, fmt.Sprintf("%-8s %s", strings.Join(ks, ","), cmd))
	}
	return append(lines, "drag     rotate", "esc      quit")
}
