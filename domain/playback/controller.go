package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tracklens/tracklens/domain/timeline"
)

// DefaultInterval is the autoplay cadence: one slot per second.
const DefaultInterval = time.Second

// Config configures a Controller. Zero values fall back to a real clock,
// DefaultInterval and the default slog logger.
type Config struct {
	Clock    clockwork.Clock
	Interval time.Duration
	Logger   *slog.Logger
}

// Snapshot is a view-facing copy of the controller state. Slot is nil when
// the filtered sequence is empty (nothing to show).
type Snapshot struct {
	Index   int
	Length  int
	Playing bool
	Slot    *timeline.Slot
}

// Controller is a stateful cursor with autoplay over a filtered slot
// sequence. All mutating operations are safe for concurrent use; widget
// updates are expected to poll Snapshot from the UI tick.
type Controller struct {
	clock    clockwork.Clock
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	slots    []timeline.Slot
	filtered []timeline.Slot
	start    string
	end      string
	index    int
	playing  bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New constructs a Controller and starts its run loop.
func New(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	c := &Controller{
		clock:    cfg.Clock,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		start:    timeline.DefaultFilterStart,
		end:      timeline.DefaultFilterEnd,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go c.run()
	return c
}

// SetSlots replaces the loaded day. Playback resets to the first filtered
// slot, paused.
func (c *Controller) SetSlots(slots []timeline.Slot) {
	c.mu.Lock()
	c.slots = slots
	c.filtered = timeline.FilterByTimeOfDay(c.slots, c.start, c.end)
	c.index = 0
	c.playing = false
	loaded, visible := len(c.slots), len(c.filtered)
	c.mu.Unlock()
	c.logger.Debug("playback.load", "slots", loaded, "visible", visible)
	c.wakeup()
}

// SetWindow changes the time-of-day filter bounds. The current index is
// clamped into the new sequence and the playing flag survives unless the
// sequence becomes empty. A pending autoplay timer is dropped so the old
// interval never ticks the new sequence.
func (c *Controller) SetWindow(start, end string) {
	c.mu.Lock()
	c.start, c.end = start, end
	c.filtered = timeline.FilterByTimeOfDay(c.slots, c.start, c.end)
	c.clampLocked()
	c.mu.Unlock()
	c.wakeup()
}

// GoToIndex moves the cursor to i, clamped into the filtered sequence.
// A no-op when there is nothing to show.
func (c *Controller) GoToIndex(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.filtered) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.filtered)-1 {
		i = len(c.filtered) - 1
	}
	c.index = i
}

// StepPrev moves one slot back; a no-op at the first slot.
func (c *Controller) StepPrev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.filtered) == 0 || c.index == 0 {
		return
	}
	c.index--
}

// StepNext moves one slot forward; a no-op at the last slot.
func (c *Controller) StepNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.filtered) == 0 || c.index >= len(c.filtered)-1 {
		return
	}
	c.index++
}

// TogglePlay flips the playing flag. Playback cannot start on an empty
// sequence; starting at the last index is allowed and auto-pauses on the
// next tick.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	if len(c.filtered) == 0 {
		c.playing = false
	} else {
		c.playing = !c.playing
	}
	c.mu.Unlock()
	c.wakeup()
}

// JumpToTime positions the cursor on the slot that was on screen at the
// given instant: the latest filtered slot at or before target. When target
// precedes every slot the cursor moves to the first slot. An exact match
// resolves to the earliest matching index.
func (c *Controller) JumpToTime(target time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.filtered) == 0 {
		return
	}
	best := 0
	for i, s := range c.filtered {
		ts, ok := s.Timestamp()
		if !ok {
			continue
		}
		if ts.After(target) {
			break
		}
		best = i
		if ts.Equal(target) {
			break
		}
	}
	c.index = best
}

// Snapshot returns a copy of the current playback state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{Index: c.index, Length: len(c.filtered), Playing: c.playing}
	if len(c.filtered) > 0 {
		s := c.filtered[c.index]
		snap.Slot = &s
	}
	return snap
}

// Close stops the run loop. Safe to call more than once.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// clampLocked keeps the invariant 0 <= index <= len-1 for non-empty
// sequences and forces pause when nothing is left to show.
func (c *Controller) clampLocked() {
	if len(c.filtered) == 0 {
		c.index = 0
		c.playing = false
		return
	}
	if c.index > len(c.filtered)-1 {
		c.index = len(c.filtered) - 1
	}
}

func (c *Controller) wakeup() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// run serializes autoplay ticks. While paused it blocks on wake; while
// playing it waits one interval, then advances. Any wakeup drops the pending
// timer, so parameter changes never race a stale tick.
func (c *Controller) run() {
	for {
		c.mu.Lock()
		playing := c.playing && len(c.filtered) > 0
		c.mu.Unlock()

		if !playing {
			select {
			case <-c.wake:
				continue
			case <-c.done:
				return
			}
		}

		select {
		case <-c.clock.After(c.interval):
			c.tick()
		case <-c.wake:
		case <-c.done:
			return
		}
	}
}

// tick advances the cursor by exactly one slot. Reaching the last slot is
// terminal: playback pauses there instead of looping.
func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || len(c.filtered) == 0 {
		return
	}
	if c.index >= len(c.filtered)-1 {
		c.playing = false
		return
	}
	c.index++
	if c.index == len(c.filtered)-1 {
		c.playing = false
	}
}
