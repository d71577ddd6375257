package presenter

import (
	"context"
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/tracklens/tracklens/domain/frames"
	"github.com/tracklens/tracklens/domain/imagecache"
	"github.com/tracklens/tracklens/domain/playback"
	"github.com/tracklens/tracklens/domain/timeline"
	"github.com/tracklens/tracklens/ui/model"
)

type mockLoader struct {
	mu      sync.Mutex
	deliver func(frames.Result)
	loads   []string
	stops   int
}

func (l *mockLoader) LoadDay(_ context.Context, userID, date string, deliver func(frames.Result)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deliver = deliver
	l.loads = append(l.loads, userID+"/"+date)
}

func (l *mockLoader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stops++
}

// finish delivers a result as the loader goroutine would.
func (l *mockLoader) finish(r frames.Result) {
	l.mu.Lock()
	deliver := l.deliver
	l.mu.Unlock()
	deliver(r)
}

type mockResolver struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *mockResolver) Resolve(_ context.Context, frameIDs []string) []*imagecache.Handle {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string(nil), frameIDs...))
	r.mu.Unlock()
	handles := make([]*imagecache.Handle, len(frameIDs))
	for i, id := range frameIDs {
		handles[i] = &imagecache.Handle{FrameID: id, Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	}
	return handles
}

func (r *mockResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type mockPlaybackView struct {
	mu         sync.Mutex
	state      string
	playLabels []bool
	positions  []string
	empties    []string
	editables  []bool
	updates    int
	resets     int
	lastImgs   []image.Image
}

func (v *mockPlaybackView) SetStateLabel(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = text
}

func (v *mockPlaybackView) SetPlayLabel(playing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playLabels = append(v.playLabels, playing)
}

func (v *mockPlaybackView) SetPosition(displayTime string, index, length int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.positions = append(v.positions, fmt.Sprintf("%s %d/%d", displayTime, index, length))
}

func (v *mockPlaybackView) SetEmpty(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.empties = append(v.empties, msg)
}

func (v *mockPlaybackView) SetSettingsEditable(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editables = append(v.editables, enabled)
}

func (v *mockPlaybackView) UpdateFrames(imgs []image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updates++
	v.lastImgs = imgs
}

func (v *mockPlaybackView) ResetFrames() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *mockPlaybackView) updateCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updates
}

func testSlots(n int) []timeline.Slot {
	fs := make([]timeline.Frame, 0, n)
	for i := 0; i < n; i++ {
		fs = append(fs, timeline.Frame{
			ID:           fmt.Sprintf("f-%d", i),
			CapturedAt:   fmt.Sprintf("2024-01-01T09:00:%02d.000000", i),
			MonitorIndex: 0,
		})
	}
	return timeline.GroupIntoSlots(fs)
}

func playbackFixture(t *testing.T) (*PlaybackPresenter, *mockLoader, *mockResolver, *mockPlaybackView) {
	t.Helper()
	cache, err := imagecache.NewCache(16)
	require.NoError(t, err)
	ctrl := playback.New(playback.Config{Clock: clockwork.NewFakeClock()})
	loader := &mockLoader{}
	resolver := &mockResolver{}
	view := &mockPlaybackView{}
	p := NewPlaybackPresenter(ctrl, loader, resolver, cache, model.NewSessionModel(), view, nil)
	t.Cleanup(p.Close)
	return p, loader, resolver, view
}

func TestPlaybackPresenter_LoadRendersFirstSlot(t *testing.T) {
	p, loader, resolver, view := playbackFixture(t)

	p.Load("u-1", "2024-01-01")
	require.Equal(t, []string{"u-1/2024-01-01"}, loader.loads)

	loader.finish(frames.Result{UserID: "u-1", Date: "2024-01-01", Slots: testSlots(3)})

	// The result is applied on the next tick; the resolved images arrive a
	// tick or two later from the worker.
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return view.updateCount() > 0
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, 1, resolver.callCount())
	view.mu.Lock()
	require.Contains(t, view.positions[0], "2024-01-01T09:00:00.000000 0/3")
	require.Equal(t, "State: ready", view.state)
	view.mu.Unlock()
}

func TestPlaybackPresenter_LoadFailureShowsError(t *testing.T) {
	p, loader, _, view := playbackFixture(t)

	p.Load("u-1", "2024-01-01")
	loader.finish(frames.Result{UserID: "u-1", Date: "2024-01-01", Err: errSentinel("boom")})
	p.Tick(time.Now())

	view.mu.Lock()
	require.Equal(t, "Error: boom", view.state)
	require.Contains(t, view.empties, "Nothing in range")
	view.mu.Unlock()
}

func TestPlaybackPresenter_StepTriggersNewResolve(t *testing.T) {
	p, loader, resolver, view := playbackFixture(t)

	p.Load("u-1", "2024-01-01")
	loader.finish(frames.Result{UserID: "u-1", Date: "2024-01-01", Slots: testSlots(2)})
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return view.updateCount() == 1
	}, time.Second, 5*time.Millisecond)

	p.StepNext()
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return view.updateCount() == 2
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, 2, resolver.callCount())
}

func TestPlaybackPresenter_JumpParsesClockTime(t *testing.T) {
	p, loader, _, view := playbackFixture(t)

	p.Load("u-1", "2024-01-01")
	loader.finish(frames.Result{UserID: "u-1", Date: "2024-01-01", Slots: testSlots(5)})
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		return view.updateCount() > 0
	}, time.Second, 5*time.Millisecond)

	p.Jump("09:00:03")
	require.Eventually(t, func() bool {
		p.Tick(time.Now())
		v := view
		v.mu.Lock()
		defer v.mu.Unlock()
		return len(v.positions) > 0 && v.positions[len(v.positions)-1] == "2024-01-01T09:00:03.000000 3/5"
	}, time.Second, 5*time.Millisecond)
}

func TestPlaybackPresenter_LoadLocksSettingsUntilResult(t *testing.T) {
	p, loader, _, view := playbackFixture(t)

	p.Load("u-1", "2024-01-01")
	view.mu.Lock()
	require.Equal(t, []bool{false}, view.editables)
	view.mu.Unlock()

	loader.finish(frames.Result{UserID: "u-1", Date: "2024-01-01", Slots: testSlots(1)})
	p.Tick(time.Now())

	view.mu.Lock()
	require.Equal(t, []bool{false, true}, view.editables)
	view.mu.Unlock()
}

func TestPlaybackPresenter_EmptyStateRenderedOnce(t *testing.T) {
	p, _, _, view := playbackFixture(t)

	// Idle ticks with no data must not reconfigure widgets repeatedly.
	p.Tick(time.Now())
	p.Tick(time.Now())
	p.Tick(time.Now())

	view.mu.Lock()
	defer view.mu.Unlock()
	require.Equal(t, []string{"No data"}, view.empties)
	require.Equal(t, []bool{false}, view.playLabels)
	require.Equal(t, 1, view.resets)
}

func TestPlaybackPresenter_CloseStopsLoader(t *testing.T) {
	p, loader, _, _ := playbackFixture(t)
	p.Close()
	require.Equal(t, 1, loader.stops)
}
