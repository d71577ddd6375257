package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tracklens/tracklens/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel encapsulates the settings form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type SettingsPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

// WindowChangedFunc is invoked after a filter window edit is applied.
type WindowChangedFunc func(start, end string)

type settingsPanel struct {
	cfg             *config.Config
	cfgPath         string
	logger          *slog.Logger
	onWindowChanged WindowChangedFunc
	applyBtn        *ButtonWidget
	widgets         map[string]*TextWidget // keyed by internal field id
}

// NewSettingsPanel creates the view bound to cfg.
func NewSettingsPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onWindowChanged WindowChangedFunc) SettingsPanel {
	return &settingsPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onWindowChanged: onWindowChanged, widgets: make(map[string]*TextWidget)}
}

func (v *settingsPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(24))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("apiBaseURL", "API Base URL", c.APIBaseURL)
	makeRow("apiToken", "API Token", c.APIToken)
	makeRow("filterStart", "Filter From (HH:MM)", c.FilterStart)
	makeRow("filterEnd", "Filter To (HH:MM)", c.FilterEnd)
	makeRow("playIntervalMs", "Play Interval (ms)", fmt.Sprintf("%d", c.PlayIntervalMs))
	makeRow("pollIntervalMs", "Live Poll Interval (ms)", fmt.Sprintf("%d", c.PollIntervalMs))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *settingsPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *settingsPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *settingsPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignString := func(id string, dst *string) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if val := strings.TrimSpace(v.text(w)); val != "" {
			*dst = val
		}
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, err := strconv.Atoi(strings.TrimSpace(v.text(w))); err == nil {
			*dst = i
		}
	}
	assignString("apiBaseURL", &cfg.APIBaseURL)
	assignString("apiToken", &cfg.APIToken)
	assignString("filterStart", &cfg.FilterStart)
	assignString("filterEnd", &cfg.FilterEnd)
	assignInt("playIntervalMs", &cfg.PlayIntervalMs)
	assignInt("pollIntervalMs", &cfg.PollIntervalMs)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	windowChanged := cfg.FilterStart != v.cfg.FilterStart || cfg.FilterEnd != v.cfg.FilterEnd
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if windowChanged && v.onWindowChanged != nil {
		v.onWindowChanged(cfg.FilterStart, cfg.FilterEnd)
	}
}
