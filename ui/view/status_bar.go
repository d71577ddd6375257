package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar displays the playback position and the live-view freshness.
type StatusBar interface {
	SetPosition(displayTime string, index, length int)
	SetEmpty(msg string)
	SetLiveUpdated(t time.Time)
}

type statusBar struct {
	positionLbl *LabelWidget
	liveLbl     *LabelWidget
}

// NewStatusBar creates the position and live labels at (row, startCol) and
// (row, startCol+1).
func NewStatusBar(row, startCol int) StatusBar {
	s := &statusBar{positionLbl: Label(Width(34), Anchor("w")), liveLbl: Label(Width(26), Anchor("w"))}
	Grid(s.positionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.liveLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.positionLbl.Configure(Txt("No data"))
	s.liveLbl.Configure(Txt(""))
	return s
}

// SetPosition shows the current slot's display time and position, 1-based.
func (s *statusBar) SetPosition(displayTime string, index, length int) {
	if s == nil || s.positionLbl == nil {
		return
	}
	s.positionLbl.Configure(Txt(fmt.Sprintf("%s  (%d/%d)", displayTime, index+1, length)))
}

// SetEmpty shows a "nothing to show" message in place of the position.
func (s *statusBar) SetEmpty(msg string) {
	if s == nil || s.positionLbl == nil {
		return
	}
	s.positionLbl.Configure(Txt(msg))
}

// SetLiveUpdated shows when the live view last refreshed successfully.
func (s *statusBar) SetLiveUpdated(t time.Time) {
	if s == nil || s.liveLbl == nil {
		return
	}
	if t.IsZero() {
		s.liveLbl.Configure(Txt(""))
		return
	}
	s.liveLbl.Configure(Txt("Live: updated " + t.Format("15:04:05")))
}
