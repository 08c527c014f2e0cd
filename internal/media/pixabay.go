package media

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"clipdeck/internal/config"
	"clipdeck/internal/domain"
)

// PixabayBaseURL is the public Pixabay API
const PixabayBaseURL = "https://pixabay.com/api/"

// PixabayClient searches Pixabay photos
type PixabayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPixabayClient creates a Pixabay client; baseURL may be empty for the public API
func NewPixabayClient(baseURL, apiKey string) *PixabayClient {
	if baseURL == "" {
		baseURL = PixabayBaseURL
	}
	return &PixabayClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type pixabayResponse struct {
	Total int     `json:"total"`
	Hits  []Image `json:"hits"`
}

// SearchImages returns one page of photos matching q
func (c *PixabayClient) SearchImages(ctx context.Context, q Query) ([]Image, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("pixabay api key not configured: %w", domain.ErrUpstream)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", q.Text)
	params.Set("image_type", "photo")
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("per_page", strconv.Itoa(config.MediaPageSize))

	var resp pixabayResponse
	if err := getJSON(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("pixabay search: %w", err)
	}
	if resp.Hits == nil {
		resp.Hits = []Image{}
	}
	return resp.Hits, nil
}
