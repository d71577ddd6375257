package imagecache

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"sync"

	// Frame blobs are PNG or JPEG depending on the capture agent.
	_ "image/jpeg"
	_ "image/png"
)

// Fetcher returns raw image bytes for one frame ID; satisfied by
// frames.Client.
type Fetcher interface {
	FrameImage(ctx context.Context, frameID string) ([]byte, error)
}

// Resolver turns frame IDs into displayable image handles, reusing the
// session cache and fetching misses concurrently.
type Resolver struct {
	fetcher Fetcher
	cache   *Cache
	logger  *slog.Logger
}

// NewResolver builds a Resolver over one session cache.
func NewResolver(fetcher Fetcher, cache *Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{fetcher: fetcher, cache: cache, logger: logger}
}

// Resolve maps frame IDs to handles, position for position. Cached IDs are
// served without a fetch; the rest are fetched concurrently. A failed or
// undecodable fetch leaves a nil entry at its position and never fails the
// batch.
func (r *Resolver) Resolve(ctx context.Context, frameIDs []string) []*Handle {
	out := make([]*Handle, len(frameIDs))

	var wg sync.WaitGroup
	for i, id := range frameIDs {
		if h, ok := r.cache.Get(id); ok && !h.Released() {
			out[i] = h
			continue
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			data, err := r.fetcher.FrameImage(ctx, id)
			if err != nil {
				r.logger.Warn("image fetch failed", "frame", id, "error", err)
				return
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				r.logger.Warn("image decode failed", "frame", id, "error", err)
				return
			}
			h := &Handle{FrameID: id, Image: img}
			r.cache.Put(id, h)
			out[i] = h
		}(i, id)
	}
	wg.Wait()
	return out
}
