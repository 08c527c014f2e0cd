package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clipdeck/internal/domain"
	"clipdeck/internal/editor"
)

// Render is the render service's view of one render
type Render struct {
	ID       string  `json:"id"`
	URL      string  `json:"url,omitempty"`
	Progress float64 `json:"progress"`
}

// Done reports whether the render has finished
func (r *Render) Done() bool {
	return r.Progress >= 100
}

type renderEnvelope struct {
	Render Render `json:"render"`
}

// Client talks to the external render service. API calls share a client
// with an overall timeout; downloads use one without, bounded by ctx alone.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	downloadClient *http.Client
	pollInterval   time.Duration
	timeout        time.Duration
	logger         *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Downloads use a copy
// of it without the overall Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		dl := *hc
		dl.Timeout = 0
		c.downloadClient = &dl
	}
}

// WithPollInterval sets the delay between status polls
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithTimeout bounds WaitForCompletion. Zero means no bound: the loop runs
// until the render finishes or the context is cancelled.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a render service client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		downloadClient: &http.Client{},
		pollInterval:   time.Second,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts the scene for rendering
func (c *Client) Submit(ctx context.Context, scene *editor.SceneData) (*Render, error) {
	body, err := json.Marshal(scene)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scene: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var env renderEnvelope
	if err := c.doJSON(req, &env); err != nil {
		return nil, fmt.Errorf("submit render: %w", err)
	}
	if env.Render.ID == "" {
		return nil, fmt.Errorf("submit render: response has no render id: %w", domain.ErrUpstream)
	}

	c.logger.Info("render submitted",
		"render_id", env.Render.ID,
		"scene_id", scene.ID,
	)
	return &env.Render, nil
}

// Status fetches the progress of a render
func (c *Client) Status(ctx context.Context, renderID string) (*Render, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+renderID+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var env renderEnvelope
	if err := c.doJSON(req, &env); err != nil {
		return nil, fmt.Errorf("render %s status: %w", renderID, err)
	}
	if env.Render.ID == "" {
		env.Render.ID = renderID
	}
	return &env.Render, nil
}

// WaitForCompletion polls until progress reaches 100. onProgress, if set,
// sees every polled value. A failed poll ends the wait; there are no retries.
func (c *Client) WaitForCompletion(ctx context.Context, renderID string, onProgress func(float64)) (*Render, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		r, err := c.Status(ctx, renderID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}
		if onProgress != nil {
			onProgress(r.Progress)
		}
		if r.Done() {
			return r, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Download streams the rendered file at url into w
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download render: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download render: status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download render: %w", err)
	}
	return n, nil
}

// Export runs the whole flow: submit, wait, download into w
func (c *Client) Export(ctx context.Context, scene *editor.SceneData, w io.Writer, onProgress func(float64)) (int64, error) {
	r, err := c.Submit(ctx, scene)
	if err != nil {
		return 0, err
	}

	done, err := c.WaitForCompletion(ctx, r.ID, onProgress)
	if err != nil {
		return 0, err
	}

	url := r.URL
	if done.URL != "" {
		url = done.URL
	}
	if url == "" {
		return 0, fmt.Errorf("render %s finished without a url: %w", r.ID, domain.ErrUpstream)
	}
	return c.Download(ctx, url, w)
}

func (c *Client) doJSON(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// context errors stay matchable next to ErrUpstream
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrUpstream)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
