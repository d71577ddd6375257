// Command framesim is a local stand-in for the capture backend. It grabs the
// desktop at a fixed cadence, splits the capture into simulated monitors and
// serves the same frame-query and image-blob endpoints the viewer consumes.
// Useful for demos and for developing the viewer without a deployed agent.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/tracklens/tracklens/capture"
	"github.com/tracklens/tracklens/domain/frames"
	"github.com/tracklens/tracklens/domain/timeline"
)

const capturedAtLayout = "2006-01-02T15:04:05.000000"

func main() {
	var (
		addr     = flag.String("addr", "127.0.0.1:8470", "listen address")
		user     = flag.String("user", "demo", "user ID the simulated frames belong to")
		monitors = flag.Int("monitors", 2, "number of simulated monitors")
		interval = flag.Duration("interval", 5*time.Second, "capture cadence")
		maxW     = flag.Int("max-width", 1280, "downscale captures wider than this")
		keep     = flag.Int("keep", 5000, "frames retained before eviction")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	store := newFrameStore(*keep)

	go captureLoop(store, *user, *monitors, *interval, *maxW, logger)

	router := setupRouter(store)
	logger.Info("framesim listening", "addr", *addr, "user", *user, "monitors", *monitors)
	if err := router.Run(*addr); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupRouter(store *frameStore) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/frames", func(c *gin.Context) {
		user := c.Query("user_id")
		date := c.Query("date")
		if user == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and date are required"})
			return
		}
		limit := 0
		if _, err := fmt.Sscanf(c.DefaultQuery("limit", "0"), "%d", &limit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad limit"})
			return
		}
		desc := c.DefaultQuery("order", string(frames.OrderAsc)) == string(frames.OrderDesc)
		list := store.List(user, date, limit, desc)
		if list == nil {
			list = []timeline.Frame{}
		}
		c.JSON(http.StatusOK, list)
	})

	router.GET("/api/frames/:id/image", func(c *gin.Context) {
		data, ok := store.Image(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown frame"})
			return
		}
		c.Data(http.StatusOK, "image/png", data)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "framesim"})
	})

	return router
}

// captureLoop grabs the desktop on a ticker, slices it into per-monitor
// frames and stores them under one timestamp so the viewer groups them into
// a single slot.
func captureLoop(store *frameStore, user string, monitors int, interval time.Duration, maxW int, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		shot, err := capture.Grab()
		if err != nil {
			logger.Warn("capture failed", "error", err)
			<-ticker.C
			continue
		}
		capturedAt := time.Now().Format(capturedAtLayout)
		for i, img := range capture.SplitColumns(shot, monitors) {
			if maxW > 0 && img.Bounds().Dx() > maxW {
				img = imaging.Resize(img, maxW, 0, imaging.Box)
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				logger.Warn("encode failed", "monitor", i, "error", err)
				continue
			}
			id := store.Add(user, capturedAt, i, buf.Bytes())
			logger.Debug("frame stored", "id", id, "monitor", i, "captured_at", capturedAt)
		}
		<-ticker.C
	}
}
