package frames

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gravitational/trace"

	"github.com/tracklens/tracklens/domain/timeline"
)

// Order selects the sort direction of a frame listing.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// DefaultDayLimit bounds a whole-day history fetch.
const DefaultDayLimit = 2000

// RecentLimit bounds a live-poll fetch to the newest few frames.
const RecentLimit = 20

// Client talks to the external Frame Query Service and Image Blob Service.
// Both are owned by the backend; this client only reads.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a Client for the given API base URL. An empty token
// disables the Authorization header (the framesim fixture needs none).
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListFrames returns the frame records for one user and one calendar day
// (date in YYYY-MM-DD). A small limit with OrderDesc is the "recent frames"
// mode used by live polling.
func (c *Client) ListFrames(ctx context.Context, userID, date string, limit int, order Order) ([]timeline.Frame, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("date", date)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if order != "" {
		q.Set("order", string(order))
	}

	body, err := c.get(ctx, "/api/frames?"+q.Encode())
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var list []timeline.Frame
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, trace.Wrap(err, "decoding frame list")
	}
	return list, nil
}

// FrameImage returns the raw image bytes for a single frame.
func (c *Client) FrameImage(ctx context.Context, frameID string) ([]byte, error) {
	body, err := c.get(ctx, "/api/frames/"+url.PathEscape(frameID)+"/image")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, trace.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return body, nil
}
