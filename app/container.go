package app

import (
	"log/slog"

	"github.com/tracklens/tracklens/config"
	"github.com/tracklens/tracklens/domain/dvr"
	"github.com/tracklens/tracklens/domain/frames"
	"github.com/tracklens/tracklens/domain/imagecache"
	"github.com/tracklens/tracklens/domain/playback"
	"github.com/tracklens/tracklens/ui/model"
	"github.com/tracklens/tracklens/ui/presenter"
	"github.com/tracklens/tracklens/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	Session *model.SessionModel
	Live    *model.LiveModel

	Client     *frames.Client
	Loader     *frames.Loader
	Controller *playback.Controller
	Cache      *imagecache.Cache
	Resolver   *imagecache.Resolver

	RootView *view.RootView
	UI       view.UI

	Playback *presenter.PlaybackPresenter
	LiveView *presenter.LivePresenter
	Loop     *presenter.Loop
}

// BuildContainer constructs all components. The root view's widgets are built
// separately by the app wrapper once the Tk runtime is up.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Session = model.NewSessionModel()
	c.Live = &model.LiveModel{}

	c.Client = frames.NewClient(cfg.APIBaseURL, cfg.APIToken)
	c.Loader = frames.NewLoader(c.Client, logger)
	c.Controller = playback.New(playback.Config{
		Interval: cfg.PlayInterval(),
		Logger:   logger,
	})
	c.Controller.SetWindow(cfg.FilterStart, cfg.FilterEnd)

	cache, err := imagecache.NewCache(cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}
	c.Cache = cache
	c.Resolver = imagecache.NewResolver(c.Client, c.Cache, logger)

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.Playback = presenter.NewPlaybackPresenter(c.Controller, c.Loader, c.Resolver, c.Cache, c.Session, c.UI, logger)
	c.LiveView = presenter.NewLivePresenter(c.Live, c.Session, c.UI, c.livePollerFactory(), logger)
	return c, nil
}

// livePollerFactory builds a fresh poller per live session. Each poller owns
// its own cache so teardown cannot release handles the playback view still
// holds.
func (c *AppContainer) livePollerFactory() func(userID string) presenter.LiveSource {
	return func(userID string) presenter.LiveSource {
		liveCache, err := imagecache.NewCache(c.Config.CacheCapacity)
		if err != nil {
			c.Logger.Error("live cache init failed", "error", err)
			liveCache, _ = imagecache.NewCache(imagecache.DefaultCapacity)
		}
		return dvr.Start(dvr.Config{
			Lister:   c.Client,
			Resolver: imagecache.NewResolver(c.Client, liveCache, c.Logger),
			Cache:    liveCache,
			UserID:   userID,
			Interval: c.Config.PollInterval(),
			Logger:   c.Logger,
		})
	}
}

// Close tears components down in dependency order: presenters (which stop
// their timers and workers) before the shared cache.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	if c.LiveView != nil {
		c.LiveView.Close()
	}
	if c.Playback != nil {
		c.Playback.Close()
	}
}
