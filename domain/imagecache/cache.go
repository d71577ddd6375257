package imagecache

import (
	"image"
	"sync/atomic"

	"github.com/gravitational/trace"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds a session cache. A full day at the usual capture
// cadence stays well under this.
const DefaultCapacity = 512

// Handle is a locally usable reference to one frame's fetched image.
// Handles are owned by the session cache; Release is called on eviction,
// Clear and session teardown, after which the pixels must not be used.
type Handle struct {
	FrameID  string
	Image    image.Image
	released atomic.Bool
}

// Release drops the pixel data. Idempotent.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	if h.released.CompareAndSwap(false, true) {
		h.Image = nil
	}
}

// Released reports whether the handle has been released.
func (h *Handle) Released() bool {
	return h != nil && h.released.Load()
}

// Cache maps frame IDs to image handles for one viewing session. It is never
// shared between sessions; eviction and Clear release the handles they drop.
type Cache struct {
	entries *lru.Cache[string, *Handle]
}

// NewCache builds a session cache holding at most capacity handles.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := lru.NewWithEvict(capacity, func(_ string, h *Handle) {
		h.Release()
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached handle for a frame ID, if any.
func (c *Cache) Get(frameID string) (*Handle, bool) {
	return c.entries.Get(frameID)
}

// Put stores a handle, possibly evicting (and releasing) the oldest one.
func (c *Cache) Put(frameID string, h *Handle) {
	c.entries.Add(frameID, h)
}

// Len reports the number of cached handles.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Clear releases every cached handle. Call when the viewing session ends.
func (c *Cache) Clear() {
	c.entries.Purge()
}
