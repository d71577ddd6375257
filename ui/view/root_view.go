package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/tracklens/tracklens/config"
	"github.com/tracklens/tracklens/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Callbacks carries the user-action handlers the root view wires onto its
// widgets. Handlers run on the Tk event thread.
type Callbacks struct {
	OnLoad          func(userID, date string)
	OnReload        func()
	OnToggleLive    func()
	OnTogglePlay    func()
	OnStepPrev      func()
	OnStepNext      func()
	OnJump          func(hhmmss string)
	OnWindowChanged func(start, end string)
	OnExit          func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Settings SettingsPanel
	Status   StatusBar
	Monitors MonitorStrip

	// Widgets
	StateLabel *LabelWidget
	playBtn    *ButtonWidget
	userEntry  *TextWidget
	dateEntry  *TextWidget
	jumpEntry  *TextWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetPlayLabel(playing bool)
	SetPosition(displayTime string, index, length int)
	SetEmpty(msg string)
	SetLiveUpdated(t time.Time)
	SetSettingsEditable(enabled bool)
	UpdateFrames(imgs []image.Image)
	ResetFrames()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. userID/date seed the selection entries.
func (rv *RootView) Build(userID, date string, cb Callbacks) {
	if rv == nil {
		return
	}
	theme.InitStyles()

	// Row 0: selection entries, state label, action buttons.
	rv.userEntry = entry(0, 0, "User", userID, 14)
	rv.dateEntry = entry(0, 2, "Date", date, 12)
	rv.StateLabel = Label(Txt("State: idle"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(5), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	loadBtn := Button(Txt("Load Day"), Command(func() {
		if cb.OnLoad != nil {
			cb.OnLoad(rv.entryText(rv.userEntry), rv.entryText(rv.dateEntry))
		}
	}))
	Grid(loadBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	liveBtn := Button(Txt("Toggle Live"), Command(func() {
		if cb.OnToggleLive != nil {
			cb.OnToggleLive()
		}
	}))
	Grid(liveBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	reloadBtn := Button(Txt("Reload"), Command(func() {
		if cb.OnReload != nil {
			cb.OnReload()
		}
	}))
	Grid(reloadBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(func() {
		if cb.OnExit != nil {
			cb.OnExit()
		}
	}))
	Grid(exitBtn, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	var darkBtn *ButtonWidget
	darkBtn = Button(Txt("Dark Mode"), Command(func() {
		theme.ToggleDark()
		label := "Dark Mode"
		if theme.IsDark() {
			label = "Light Mode"
		}
		darkBtn.Configure(Txt(label))
	}))
	Grid(darkBtn, In(btnFrame), Row(4), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Settings rows.
	rv.Settings = NewSettingsPanel(rv.cfg, rv.cfgPath, rv.logger, cb.OnWindowChanged)
	row := rv.Settings.Build(1)

	// Transport row: step/play controls, jump entry, status readout.
	transport := Frame()
	Grid(transport, Row(row), Column(0), Columnspan(6), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	prevBtn := Button(Txt("<"), Command(func() {
		if cb.OnStepPrev != nil {
			cb.OnStepPrev()
		}
	}))
	Grid(prevBtn, In(transport), Row(0), Column(0), Padx("0.2m"))
	rv.playBtn = Button(Txt("Play"), Command(func() {
		if cb.OnTogglePlay != nil {
			cb.OnTogglePlay()
		}
	}))
	Grid(rv.playBtn, In(transport), Row(0), Column(1), Padx("0.2m"))
	nextBtn := Button(Txt(">"), Command(func() {
		if cb.OnStepNext != nil {
			cb.OnStepNext()
		}
	}))
	Grid(nextBtn, In(transport), Row(0), Column(2), Padx("0.2m"))

	jumpLbl := Label(Txt("Jump to:"), Anchor("e"))
	Grid(jumpLbl, In(transport), Row(0), Column(3), Padx("0.4m"))
	rv.jumpEntry = Text(Height(1), Width(10))
	Grid(rv.jumpEntry, In(transport), Row(0), Column(4), Padx("0.2m"))
	jumpBtn := Button(Txt("Go"), Command(func() {
		if cb.OnJump != nil {
			cb.OnJump(rv.entryText(rv.jumpEntry))
		}
	}))
	Grid(jumpBtn, In(transport), Row(0), Column(5), Padx("0.2m"))
	row++

	rv.Status = NewStatusBar(row, 0)
	row++

	// Monitor previews fill the remaining rows.
	rv.Monitors = NewMonitorStrip(row, rv.cfg.PreviewWidth, rv.cfg.PreviewHeight)
	rv.Monitors.Reset()
}

// entry places a label + single-line text entry pair and returns the entry.
func entry(row, col int, label, value string, width int) *TextWidget {
	lbl := Label(Txt(label), Anchor("e"))
	Grid(lbl, Row(row), Column(col), Sticky("e"), Padx("0.2m"), Pady("0.3m"))
	w := Text(Height(1), Width(width))
	Grid(w, Row(row), Column(col+1), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	w.Delete("1.0", END)
	w.Insert("1.0", value)
	return w
}

func (rv *RootView) entryText(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetPlayLabel flips the play/pause button caption.
func (rv *RootView) SetPlayLabel(playing bool) {
	if rv == nil || rv.playBtn == nil {
		return
	}
	if playing {
		rv.playBtn.Configure(Txt("Pause"))
	} else {
		rv.playBtn.Configure(Txt("Play"))
	}
}

// SetPosition proxies to the status bar.
func (rv *RootView) SetPosition(displayTime string, index, length int) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetPosition(displayTime, index, length)
	}
}

// SetEmpty proxies to the status bar.
func (rv *RootView) SetEmpty(msg string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetEmpty(msg)
	}
}

// SetLiveUpdated proxies to the status bar.
func (rv *RootView) SetLiveUpdated(t time.Time) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetLiveUpdated(t)
	}
}

// SetSettingsEditable locks or unlocks the settings form, e.g. while a day
// load is in flight.
func (rv *RootView) SetSettingsEditable(enabled bool) {
	if rv != nil && rv.Settings != nil {
		rv.Settings.SetEditable(enabled)
	}
}

// UpdateFrames proxies to the monitor strip.
func (rv *RootView) UpdateFrames(imgs []image.Image) {
	if rv != nil && rv.Monitors != nil {
		rv.Monitors.UpdateFrames(imgs)
	}
}

// ResetFrames clears the monitor strip.
func (rv *RootView) ResetFrames() {
	if rv != nil && rv.Monitors != nil {
		rv.Monitors.Reset()
	}
}
