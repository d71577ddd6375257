package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/tracklens/tracklens/domain/dvr"
	"github.com/tracklens/tracklens/domain/imagecache"
	"github.com/tracklens/tracklens/domain/timeline"
	"github.com/tracklens/tracklens/ui/model"
)

type mockLiveSource struct {
	snap    dvr.Snapshot
	stopped int
}

func (s *mockLiveSource) Snapshot() dvr.Snapshot { return s.snap }
func (s *mockLiveSource) Stop()                  { s.stopped++ }

type mockLiveView struct {
	updates     int
	lastImgs    []image.Image
	updatedAts  []time.Time
	stateLabels []string
}

func (v *mockLiveView) UpdateFrames(imgs []image.Image) { v.updates++; v.lastImgs = imgs }
func (v *mockLiveView) SetLiveUpdated(t time.Time)      { v.updatedAts = append(v.updatedAts, t) }
func (v *mockLiveView) SetStateLabel(text string)       { v.stateLabels = append(v.stateLabels, text) }

func liveFixture() (*LivePresenter, *mockLiveSource, *mockLiveView, *model.SessionModel) {
	sess := model.NewSessionModel()
	sess.Select("u-1", "2024-01-01")
	src := &mockLiveSource{}
	view := &mockLiveView{}
	p := NewLivePresenter(&model.LiveModel{}, sess, view, func(string) LiveSource { return src }, nil)
	return p, src, view, sess
}

func TestLivePresenter_EnableDisable_Idempotent(t *testing.T) {
	p, src, _, _ := liveFixture()

	p.Enable()
	if !p.Enabled() {
		t.Fatalf("enable failed")
	}
	p.Enable() // no second poller
	p.Disable()
	if p.Enabled() || src.stopped != 1 {
		t.Fatalf("disable failed: enabled=%v stopped=%d", p.Enabled(), src.stopped)
	}
	p.Disable()
	if src.stopped != 1 {
		t.Fatalf("disable not idempotent: stopped=%d", src.stopped)
	}
}

func TestLivePresenter_EnableRequiresUser(t *testing.T) {
	src := &mockLiveSource{}
	p := NewLivePresenter(&model.LiveModel{}, model.NewSessionModel(), &mockLiveView{}, func(string) LiveSource { return src }, nil)
	p.Enable()
	if p.Enabled() {
		t.Fatalf("live enabled without a selected user")
	}
}

func TestLivePresenter_TickRendersNewSnapshotsOnly(t *testing.T) {
	p, src, view, _ := liveFixture()
	p.Enable()

	now := time.Now()
	src.snap = dvr.Snapshot{
		Slot:      &timeline.Slot{Time: "2024-01-01T09:00:00", DisplayTime: "2024-01-01T09:00:00.000000"},
		Images:    []*imagecache.Handle{{FrameID: "f-1", Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}},
		UpdatedAt: now,
	}
	p.Tick(now)
	p.Tick(now) // same UpdatedAt, no re-render
	if view.updates != 1 || len(view.updatedAts) != 1 {
		t.Fatalf("expected one render, got updates=%d updatedAts=%d", view.updates, len(view.updatedAts))
	}

	src.snap.UpdatedAt = now.Add(4 * time.Second)
	p.Tick(now.Add(4 * time.Second))
	if view.updates != 2 {
		t.Fatalf("expected re-render on newer snapshot, got updates=%d", view.updates)
	}
}

func TestLivePresenter_ErrorPollClearsImages(t *testing.T) {
	p, src, view, _ := liveFixture()
	p.Enable()

	now := time.Now()
	src.snap = dvr.Snapshot{
		Slot:      &timeline.Slot{Time: "2024-01-01T09:00:00", DisplayTime: "2024-01-01T09:00:00.000000"},
		Images:    []*imagecache.Handle{{FrameID: "f-1", Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}},
		UpdatedAt: now,
	}
	p.Tick(now)

	src.snap = dvr.Snapshot{Err: errSentinel("backend down"), UpdatedAt: now}
	p.Tick(now)
	if len(view.stateLabels) != 1 {
		t.Fatalf("expected error label, got labels=%v", view.stateLabels)
	}
	if view.updates != 2 || view.lastImgs != nil {
		t.Fatalf("stale frames survived the failed poll: updates=%d imgs=%v", view.updates, view.lastImgs)
	}
	// Repeated error ticks keep the panes blank without re-clearing.
	p.Tick(now)
	if view.updates != 2 {
		t.Fatalf("error tick re-cleared: updates=%d", view.updates)
	}
}

func TestLivePresenter_EmptyPollClearsImages(t *testing.T) {
	p, src, view, _ := liveFixture()
	p.Enable()

	now := time.Now()
	src.snap = dvr.Snapshot{
		Slot:      &timeline.Slot{Time: "2024-01-01T09:00:00", DisplayTime: "2024-01-01T09:00:00.000000"},
		Images:    []*imagecache.Handle{{FrameID: "f-1", Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}},
		UpdatedAt: now,
	}
	p.Tick(now)
	if view.updates != 1 || len(view.lastImgs) != 1 {
		t.Fatalf("render failed: updates=%d", view.updates)
	}

	// Poller found nothing; UpdatedAt is unchanged per its contract.
	src.snap = dvr.Snapshot{UpdatedAt: now}
	p.Tick(now)
	if view.updates != 2 || view.lastImgs != nil {
		t.Fatalf("stale frames survived the empty poll: updates=%d imgs=%v", view.updates, view.lastImgs)
	}
	p.Tick(now)
	if view.updates != 2 {
		t.Fatalf("empty tick re-cleared: updates=%d", view.updates)
	}

	// Captures resume: the newer snapshot renders again.
	src.snap = dvr.Snapshot{
		Slot:      &timeline.Slot{Time: "2024-01-01T09:00:04", DisplayTime: "2024-01-01T09:00:04.000000"},
		Images:    []*imagecache.Handle{{FrameID: "f-2", Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}},
		UpdatedAt: now.Add(4 * time.Second),
	}
	p.Tick(now.Add(4 * time.Second))
	if view.updates != 3 || len(view.lastImgs) != 1 {
		t.Fatalf("resumed captures not rendered: updates=%d", view.updates)
	}
}

type errSentinel string

func (e errSentinel) Error() string { return string(e) }
