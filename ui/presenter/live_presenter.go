package presenter

import (
	"image"
	"log/slog"
	"time"

	"github.com/tracklens/tracklens/domain/dvr"
	"github.com/tracklens/tracklens/ui/model"
)

// LiveSource is the running poller behind a live session.
type LiveSource interface {
	Snapshot() dvr.Snapshot
	Stop()
}

// LiveView is the UI surface for live mode.
type LiveView interface {
	UpdateFrames(imgs []image.Image)
	SetLiveUpdated(t time.Time)
	SetStateLabel(text string)
}

// LivePresenter toggles live polling for the selected user and renders the
// newest poll result on Tick. Enable and Disable are idempotent.
type LivePresenter struct {
	model   *model.LiveModel
	sess    *model.SessionModel
	view    LiveView
	factory func(userID string) LiveSource
	logger  *slog.Logger

	source   LiveSource
	lastSeen time.Time
	shown    bool
}

// NewLivePresenter wires a live presenter. factory builds a poller for one
// user; it is called on Enable and the result stopped on Disable.
func NewLivePresenter(m *model.LiveModel, sess *model.SessionModel, view LiveView, factory func(userID string) LiveSource, logger *slog.Logger) *LivePresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LivePresenter{
		model:   m,
		sess:    sess,
		view:    view,
		factory: factory,
		logger:  logger,
	}
}

func (p *LivePresenter) Enable() {
	if p == nil || p.model.Enabled() {
		return
	}
	_, userID, _, _, _ := p.sess.Values()
	if userID == "" {
		p.logger.Warn("live enable ignored, no user selected")
		return
	}
	p.source = p.factory(userID)
	p.lastSeen = time.Time{}
	p.shown = false
	p.model.SetEnabled(true)
	p.logger.Info("live.enable", "user_id", userID)
}

func (p *LivePresenter) Disable() {
	if p == nil || !p.model.Enabled() {
		return
	}
	p.model.SetEnabled(false)
	if p.source != nil {
		p.source.Stop()
		p.source = nil
	}
	p.logger.Info("live.disable")
}

func (p *LivePresenter) Toggle() {
	if p == nil {
		return
	}
	if p.model.Enabled() {
		p.Disable()
	} else {
		p.Enable()
	}
}

func (p *LivePresenter) Enabled() bool {
	return p != nil && p.model.Enabled()
}

// Tick renders the poller's latest snapshot when it advanced since the last
// render. An errored or empty poll drops whatever frames are on screen so
// the view never shows captures the poller no longer vouches for. No-op
// while live mode is off.
func (p *LivePresenter) Tick(now time.Time) {
	if p == nil || !p.model.Enabled() || p.source == nil {
		return
	}
	snap := p.source.Snapshot()
	if snap.Err != nil {
		p.clearShown()
		p.view.SetStateLabel("Live error: " + snap.Err.Error())
		return
	}
	if snap.Slot == nil {
		// No captures right now (nothing yet today, or the user went idle).
		p.clearShown()
		return
	}
	if snap.UpdatedAt.IsZero() || !snap.UpdatedAt.After(p.lastSeen) {
		return
	}
	p.lastSeen = snap.UpdatedAt
	p.shown = true
	imgs := make([]image.Image, len(snap.Images))
	for i, h := range snap.Images {
		if h != nil {
			imgs[i] = h.Image
		}
	}
	p.view.UpdateFrames(imgs)
	p.view.SetLiveUpdated(snap.UpdatedAt)
}

// clearShown blanks the frame panes once after a render, leaving the
// last-updated readout in place.
func (p *LivePresenter) clearShown() {
	if !p.shown {
		return
	}
	p.shown = false
	p.lastSeen = time.Time{}
	p.view.UpdateFrames(nil)
}

// Close stops any running poller.
func (p *LivePresenter) Close() {
	if p == nil {
		return
	}
	p.Disable()
}
