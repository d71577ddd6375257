package frames

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/tracklens/tracklens/domain/timeline"
)

// Lister is the frame-query surface the Loader needs; satisfied by Client.
type Lister interface {
	ListFrames(ctx context.Context, userID, date string, limit int, order Order) ([]timeline.Frame, error)
}

// Result is the outcome of a day load. Err is set on load failure; an empty
// Slots with a nil Err means the day simply has no captures.
type Result struct {
	UserID string
	Date   string
	Slots  []timeline.Slot
	Err    error
}

// Loader fetches a whole day of frames asynchronously and guards against
// stale responses: each LoadDay bumps a generation counter and a response is
// delivered only while its generation is still the current one. Superseded
// responses are discarded silently.
type Loader struct {
	lister Lister
	logger *slog.Logger
	limit  int

	gen    atomic.Uint64
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewLoader builds a Loader on top of the given Lister.
func NewLoader(lister Lister, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{lister: lister, logger: logger, limit: DefaultDayLimit}
}

// LoadDay starts an asynchronous load of one user/day and invokes deliver
// with the grouped slots, unless a newer LoadDay superseded this request in
// the meantime. The previous in-flight request, if any, is cancelled.
// deliver runs on the loader goroutine.
func (l *Loader) LoadDay(ctx context.Context, userID, date string, deliver func(Result)) {
	gen := l.gen.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.mu.Unlock()

	go func() {
		defer cancel()
		list, err := l.lister.ListFrames(ctx, userID, date, l.limit, OrderAsc)
		if gen != l.gen.Load() {
			// A newer request took over while this one was in flight.
			l.logger.Debug("frames.load superseded", "user", userID, "date", date)
			return
		}
		res := Result{UserID: userID, Date: date, Err: err}
		if err == nil {
			res.Slots = timeline.GroupIntoSlots(list)
		} else {
			l.logger.Error("frames.load failed", "user", userID, "date", date, "error", err)
		}
		deliver(res)
	}()
}

// Stop cancels any in-flight load and invalidates its delivery.
func (l *Loader) Stop() {
	l.gen.Add(1)
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
}
