package presenter

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tracklens/tracklens/domain/frames"
	"github.com/tracklens/tracklens/domain/imagecache"
	"github.com/tracklens/tracklens/domain/playback"
	"github.com/tracklens/tracklens/ui/model"
)

// DayLoader narrows what the presenter needs from the frames layer.
type DayLoader interface {
	LoadDay(ctx context.Context, userID, date string, deliver func(frames.Result))
	Stop()
}

// ImageResolver narrows the image resolution surface.
type ImageResolver interface {
	Resolve(ctx context.Context, frameIDs []string) []*imagecache.Handle
}

// PlaybackView describes the UI surface updated by the presenter.
type PlaybackView interface {
	SetStateLabel(text string)
	SetPlayLabel(playing bool)
	SetPosition(displayTime string, index, length int)
	SetEmpty(msg string)
	SetSettingsEditable(enabled bool)
	UpdateFrames(imgs []image.Image)
	ResetFrames()
}

// resolvedSlot is a finished image resolution for one slot key.
type resolvedSlot struct {
	key  string
	imgs []image.Image
}

// PlaybackPresenter bridges the playback controller, the day loader and the
// image resolver to the view. All view mutation happens in Tick, which the
// update loop calls on the Tk event thread; loader and resolver results are
// handed over through atomics.
type PlaybackPresenter struct {
	ctrl     *playback.Controller
	loader   DayLoader
	resolver ImageResolver
	cache    *imagecache.Cache
	sess     *model.SessionModel
	view     PlaybackView
	logger   *slog.Logger

	pendingLoad atomic.Pointer[frames.Result]
	resolved    atomic.Pointer[resolvedSlot]
	resolveReq  chan resolveRequest

	renderedKey string
	renderedPos [3]int // index, length, playing(0/1) last pushed to the view
	stateText   string
	emptyMsg    string // last empty-state message shown; "" while rendering slots

	ctx    context.Context
	cancel context.CancelFunc
}

type resolveRequest struct {
	key string
	ids []string
}

// NewPlaybackPresenter wires the presenter and starts its resolve worker.
func NewPlaybackPresenter(ctrl *playback.Controller, loader DayLoader, resolver ImageResolver, cache *imagecache.Cache, sess *model.SessionModel, view PlaybackView, logger *slog.Logger) *PlaybackPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &PlaybackPresenter{
		ctrl:       ctrl,
		loader:     loader,
		resolver:   resolver,
		cache:      cache,
		sess:       sess,
		view:       view,
		logger:     logger,
		resolveReq: make(chan resolveRequest, 1),
		ctx:        ctx,
		cancel:     cancel,
	}
	go p.resolveWorker()
	return p
}

// Load starts a fresh viewing session for one user/day. The previous
// session's cached handles are released first.
func (p *PlaybackPresenter) Load(userID, date string) {
	if p == nil || userID == "" || date == "" {
		return
	}
	p.sess.Select(userID, date)
	p.view.SetSettingsEditable(false)
	p.ctrl.SetSlots(nil)
	p.cache.Clear()
	p.renderedKey = ""
	p.resolved.Store(nil)
	p.loader.LoadDay(p.ctx, userID, date, func(r frames.Result) {
		p.pendingLoad.Store(&r)
	})
}

// Reload re-triggers the current selection, e.g. after a load failure.
func (p *PlaybackPresenter) Reload() {
	if p == nil || p.sess == nil {
		return
	}
	_, userID, date, _, _ := p.sess.Values()
	p.Load(userID, date)
}

// TogglePlay, StepPrev, StepNext and GoToIndex forward to the controller.
func (p *PlaybackPresenter) TogglePlay() { p.ctrl.TogglePlay() }
func (p *PlaybackPresenter) StepPrev()   { p.ctrl.StepPrev() }
func (p *PlaybackPresenter) StepNext()   { p.ctrl.StepNext() }

// SetWindow refilters playback to a new time-of-day window.
func (p *PlaybackPresenter) SetWindow(start, end string) {
	p.ctrl.SetWindow(start, end)
}

// Jump deep-links to a moment of the loaded day, given as HH:MM:SS.
func (p *PlaybackPresenter) Jump(hhmmss string) {
	if p == nil || p.sess == nil {
		return
	}
	_, _, date, _, _ := p.sess.Values()
	if date == "" || hhmmss == "" {
		return
	}
	target, err := time.Parse("2006-01-02T15:04:05", date+"T"+hhmmss)
	if err != nil {
		p.logger.Warn("jump parse failed", "input", hhmmss, "error", err)
		return
	}
	p.ctrl.JumpToTime(target)
}

// Tick applies pending loader results, requests image resolution when the
// current slot changed and pushes the latest state to the view.
func (p *PlaybackPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}

	if r := p.pendingLoad.Swap(nil); r != nil {
		if r.Err != nil {
			p.sess.LoadFailed(r.Err.Error())
		} else {
			p.sess.LoadSucceeded(now)
			p.ctrl.SetSlots(r.Slots)
		}
		p.view.SetSettingsEditable(true)
	}

	p.updateStateLabel()

	snap := p.ctrl.Snapshot()
	if snap.Length == 0 {
		msg := "No data"
		if p.sess.Active() {
			msg = "Nothing in range"
		}
		// Only touch the widgets on the transition into (or within) the
		// empty state; steady-state ticks are no-ops.
		if msg == p.emptyMsg {
			return
		}
		p.emptyMsg = msg
		p.renderedKey = ""
		p.renderedPos = [3]int{}
		p.view.ResetFrames()
		p.view.SetEmpty(msg)
		p.view.SetPlayLabel(false)
		return
	}
	p.emptyMsg = ""

	pos := [3]int{snap.Index, snap.Length, boolToInt(snap.Playing)}
	if pos != p.renderedPos {
		p.renderedPos = pos
		p.view.SetPosition(snap.Slot.DisplayTime, snap.Index, snap.Length)
		p.view.SetPlayLabel(snap.Playing)
	}

	key := snap.Slot.Time
	if key != p.renderedKey {
		// Ask the worker for this slot's images; latest request wins.
		select {
		case p.resolveReq <- resolveRequest{key: key, ids: snap.Slot.FrameIDs()}:
		default:
			select {
			case <-p.resolveReq:
			default:
			}
			select {
			case p.resolveReq <- resolveRequest{key: key, ids: snap.Slot.FrameIDs()}:
			default:
			}
		}
		p.renderedKey = key
	}

	if res := p.resolved.Swap(nil); res != nil {
		if res.key == p.renderedKey {
			p.view.UpdateFrames(res.imgs)
		}
		// A result for a slot we already moved past is dropped.
	}
}

// Close stops the resolve worker and the loader and releases the session
// cache. Timers first, cache last.
func (p *PlaybackPresenter) Close() {
	if p == nil {
		return
	}
	p.cancel()
	p.loader.Stop()
	p.ctrl.Close()
	p.cache.Clear()
}

func (p *PlaybackPresenter) updateStateLabel() {
	_, _, _, loading, errMsg := p.sess.Values()
	text := "State: ready"
	switch {
	case !p.sess.Active():
		text = "State: idle"
	case loading:
		text = "State: loading"
	case errMsg != "":
		text = "Error: " + errMsg
	}
	if text != p.stateText {
		p.stateText = text
		p.view.SetStateLabel(text)
	}
}

// resolveWorker serializes image resolution off the UI thread and publishes
// the newest finished slot for Tick to render.
func (p *PlaybackPresenter) resolveWorker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case req := <-p.resolveReq:
			handles := p.resolver.Resolve(p.ctx, req.ids)
			imgs := make([]image.Image, len(handles))
			for i, h := range handles {
				if h != nil {
					imgs[i] = h.Image
				}
			}
			p.resolved.Store(&resolvedSlot{key: req.key, imgs: imgs})
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
