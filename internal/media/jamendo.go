package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"clipdeck/internal/config"
	"clipdeck/internal/domain"
)

// JamendoBaseURL is the public Jamendo API
const JamendoBaseURL = "https://api.jamendo.com/v3.0"

// JamendoClient searches Jamendo tracks
type JamendoClient struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// NewJamendoClient creates a Jamendo client; baseURL may be empty for the public API
func NewJamendoClient(baseURL, clientID string) *JamendoClient {
	if baseURL == "" {
		baseURL = JamendoBaseURL
	}
	return &JamendoClient{
		baseURL:    baseURL,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type jamendoResponse struct {
	Headers struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
	} `json:"headers"`
	Results []Track `json:"results"`
}

// SearchTracks returns one page of tracks matching q
func (c *JamendoClient) SearchTracks(ctx context.Context, q Query) ([]Track, error) {
	if c.clientID == "" {
		return nil, fmt.Errorf("jamendo client id not configured: %w", domain.ErrUpstream)
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("search", q.Text)
	params.Set("limit", strconv.Itoa(config.MediaPageSize))
	params.Set("page", strconv.Itoa(q.Page))

	var resp jamendoResponse
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/tracks?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("jamendo search: %w", err)
	}
	if resp.Headers.Status != "" && resp.Headers.Status != "success" {
		return nil, fmt.Errorf("jamendo search: %s: %w", resp.Headers.ErrorMessage, domain.ErrUpstream)
	}
	if resp.Results == nil {
		resp.Results = []Track{}
	}
	return resp.Results, nil
}

func getJSON(ctx context.Context, hc *http.Client, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
