package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Playback *PlaybackPresenter
	Live     *LivePresenter
	Schedule func()
}

func NewLoop(playback *PlaybackPresenter, live *LivePresenter, schedule func()) *Loop {
	return &Loop{Playback: playback, Live: live, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Playback != nil {
		l.Playback.Tick(now)
	}
	if l.Live != nil {
		l.Live.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
