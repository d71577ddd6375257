package dvr

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tracklens/tracklens/domain/frames"
	"github.com/tracklens/tracklens/domain/imagecache"
	"github.com/tracklens/tracklens/domain/timeline"
)

// DefaultInterval is the live-view poll cadence.
const DefaultInterval = 4 * time.Second

// Snapshot is the most recent live state. Slot and Images are nil when the
// last poll returned nothing or failed; UpdatedAt only moves on a successful
// poll.
type Snapshot struct {
	Slot      *timeline.Slot
	Images    []*imagecache.Handle
	UpdatedAt time.Time
	Err       error
}

// Config configures a Poller.
type Config struct {
	Lister   frames.Lister
	Resolver *imagecache.Resolver
	Cache    *imagecache.Cache
	UserID   string
	Clock    clockwork.Clock
	Interval time.Duration
	Logger   *slog.Logger
}

// Poller repeatedly fetches the newest few frames for one user today,
// regroups only the latest slot and resolves its images for near-real-time
// display. It owns its cache session: Stop tears down the ticker and
// releases every cached handle.
type Poller struct {
	lister   frames.Lister
	resolver *imagecache.Resolver
	cache    *imagecache.Cache
	userID   string
	clock    clockwork.Clock
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	snap Snapshot

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Start builds a Poller and begins polling immediately.
func Start(cfg Config) *Poller {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		lister:   cfg.Lister,
		resolver: cfg.Resolver,
		cache:    cfg.Cache,
		userID:   cfg.UserID,
		clock:    cfg.Clock,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go p.run(ctx)
	return p
}

// Snapshot returns a copy of the latest live state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Stop halts polling and releases the session's cached handles. Safe to call
// more than once; pending fetches are cancelled first, then the cache is
// cleared.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		close(p.done)
		if p.cache != nil {
			p.cache.Clear()
		}
	})
}

func (p *Poller) run(ctx context.Context) {
	for {
		p.poll(ctx)
		select {
		case <-p.clock.After(p.interval):
		case <-p.done:
			return
		}
	}
}

// poll fetches the newest frames for today and publishes the latest slot.
// Errors are transient: they surface in the snapshot and the next tick
// retries at the same cadence.
func (p *Poller) poll(ctx context.Context) {
	today := p.clock.Now().Format("2006-01-02")
	list, err := p.lister.ListFrames(ctx, p.userID, today, frames.RecentLimit, frames.OrderDesc)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("dvr.poll failed", "user", p.userID, "error", err)
		p.mu.Lock()
		p.snap.Slot = nil
		p.snap.Images = nil
		p.snap.Err = err
		p.mu.Unlock()
		return
	}

	slots := timeline.GroupIntoSlots(list)
	if len(slots) == 0 {
		// No captures yet today; not an error.
		p.mu.Lock()
		p.snap.Slot = nil
		p.snap.Images = nil
		p.snap.Err = nil
		p.mu.Unlock()
		return
	}

	latest := slots[len(slots)-1]
	images := p.resolver.Resolve(ctx, latest.FrameIDs())
	if ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	p.snap = Snapshot{Slot: &latest, Images: images, UpdatedAt: p.clock.Now()}
	p.mu.Unlock()
}
