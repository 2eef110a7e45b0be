// Package tui is an interactive terminal front-end: the mouse drives the drag
// engine and the scene is redrawn after every event.
//
// Left button drags, right button toggles drag selection, q or Esc quits.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/output"
	"github.com/yourusername/dragcore/internal/session"
	"github.com/yourusername/dragcore/internal/types"
)

// App owns the screen for one interactive session
type App struct {
	screen  tcell.Screen
	sess    *session.Session
	canvas  types.Size
	unicode bool

	sc      *output.ScalingContext
	buttons tcell.ButtonMask // buttons held at the previous mouse event
	status  string
}

// New creates an app drawing sess on screen. The screen must not be
// initialized yet; Run does that.
func New(screen tcell.Screen, sess *session.Session, unicode bool) *App {
	a := &App{
		screen:  screen,
		sess:    sess,
		canvas:  sess.Config.Settings.CanvasSize(),
		unicode: unicode,
		status:  "left: drag   right: select   q: quit",
	}
	sess.Scene.Bind(drag.EventDragStop, func(payload any) bool {
		if p, ok := payload.(drag.DragStopPayload); ok {
			a.status = fmt.Sprintf("%s → %s", p.Element, p.Pos)
		}
		return true
	})
	return a
}

// NewTerminal creates an app on the real terminal
func NewTerminal(sess *session.Session, unicode bool) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return New(screen, sess, unicode), nil
}

// Run initializes the screen and processes events until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer a.screen.Fini()

	a.screen.EnableMouse()
	a.screen.HideCursor()
	a.resize()
	a.Draw()

	go func() {
		<-ctx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort wakeup
	}()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return nil
		}
		if !a.Handle(ev) {
			return nil
		}
		a.Draw()
	}
}

// Handle applies one terminal event. Returns false when the user quits.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		a.resize()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	if a.sc == nil {
		a.resize()
	}
	col, row := ev.Position()
	p := a.sc.TerminalToPixel(col, row)
	buttons := ev.Buttons()
	prev := a.buttons
	a.buttons = buttons

	left := buttons&tcell.Button1 != 0
	wasLeft := prev&tcell.Button1 != 0

	switch {
	case left && !wasLeft:
		if id, ok := a.sess.PressAt(p); ok {
			a.status = "dragging " + id
		} else if id != "" {
			a.status = id + " cannot be dragged"
		}
	case left && wasLeft:
		a.sess.MoveTo(p)
	case !left && wasLeft:
		a.sess.ReleaseAt(p)
	}

	if buttons&tcell.Button2 != 0 && prev&tcell.Button2 == 0 {
		if id, ok := a.sess.ToggleSelectionAt(p); ok {
			a.status = fmt.Sprintf("selection: %v", a.sess.Handler.DragSelection())
			logging.Debug().Str("element", id).Msg("selection toggled")
		}
	}
}

func (a *App) resize() {
	w, h := a.screen.Size()
	a.sc = output.NewScalingContext(a.canvas, w, max(h-1, 1))
}

// Draw renders the scene and the status line
func (a *App) Draw() {
	if a.sc == nil {
		a.resize()
	}
	a.screen.Clear()

	canvas := output.NewCanvas(a.sc.TermWidth, a.sc.TermHeight, a.unicode)
	output.RenderScene(a.sess.Scene, a.sc, canvas, true)

	style := tcell.StyleDefault
	for y, line := range canvas.Lines() {
		x := 0
		for _, r := range line {
			a.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range a.status {
		a.screen.SetContent(x, a.sc.TermHeight, r, nil, statusStyle)
		x++
	}
	a.screen.Show()
}

// Status returns the current status line text
func (a *App) Status() string {
	return a.status
}
