package realtime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Client fetches GTFS-Realtime protobuf feeds over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and decodes a single feed. Returns nil when url is
// empty, so callers can treat individual feeds as optional.
func (c *Client) Fetch(ctx context.Context, url string) (*gtfsrtpb.FeedMessage, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	fm := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(body, fm); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return fm, nil
}
