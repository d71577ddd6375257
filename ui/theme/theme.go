package theme

// Palette and style initialization for the viewer UI. InitStyles activates
// the base ttk theme and applies the palette for the current mode; SetDark
// and ToggleDark switch modes at runtime so long review sessions can run in
// a dark room without washing out the capture previews.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Background colors per mode. The preview panes carry their own pixels, so
// the palette only needs to keep the chrome around them unobtrusive.
const (
	lightBg = "#f7f9fb"
	darkBg  = "#0f172a"
)

// internal flag for current mode
var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// ToggleDark flips dark mode and reapplies styles. Returns new mode value.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	_ = ActivateTheme("azure light") // baseline metrics
	if dark {
		App.Configure(Background(darkBg))
	} else {
		App.Configure(Background(lightBg))
	}
}
