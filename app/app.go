package app

import (
	"fmt"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/tracklens/tracklens/config"
	"github.com/tracklens/tracklens/ui/presenter"
	"github.com/tracklens/tracklens/ui/view"
)

const (
	tick = 100 * time.Millisecond
)

type app struct {
	config  *config.Config
	cfgPath string
	logger  *slog.Logger

	userID string
	date   string

	container *AppContainer
	loop      *presenter.Loop
	afterID   string
}

// NewApp prepares the Tk top-level window. userID and date seed the selection
// entries; either may be empty.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger, userID, date string) *app {
	a := &app{config: cfg, cfgPath: cfgPath, logger: logger, userID: userID, date: date}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start wires the container, builds the widget tree and enters the Tk event
// loop. It blocks until the window closes.
func (a *app) Start() error {
	c, err := BuildContainer(a.config, a.logger, a.cfgPath)
	if err != nil {
		return err
	}
	a.container = c

	c.RootView.Build(a.userID, a.date, view.Callbacks{
		OnLoad:       c.Playback.Load,
		OnReload:     c.Playback.Reload,
		OnToggleLive: c.LiveView.Toggle,
		OnTogglePlay: c.Playback.TogglePlay,
		OnStepPrev:   c.Playback.StepPrev,
		OnStepNext:   c.Playback.StepNext,
		OnJump:       c.Playback.Jump,
		OnWindowChanged: func(start, end string) {
			c.Playback.SetWindow(start, end)
		},
		OnExit: a.exitHandler,
	})

	a.loop = presenter.NewLoop(c.Playback, c.LiveView, a.scheduleUpdate)

	if a.userID != "" && a.date != "" {
		c.Playback.Load(a.userID, a.date)
	}

	a.scheduleUpdate()
	App.Wait()
	return nil
}

func (a *app) update() {
	a.loop.Tick()
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps the update on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	a.container.Close()
	Destroy(App)
}
