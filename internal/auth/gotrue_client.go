package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
)

// GoTrueClient talks to the public Supabase auth endpoints with the anon key.
// It implements services.IdentityProvider.
type GoTrueClient struct {
	supabaseURL string
	anonKey     string
	httpClient  *http.Client
}

// NewGoTrueClient creates a client for password sign-in, sign-up and sign-out.
func NewGoTrueClient(supabaseURL, anonKey string) *GoTrueClient {
	return &GoTrueClient{
		supabaseURL: strings.TrimRight(supabaseURL, "/"),
		anonKey:     anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type passwordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// errorResponse covers both the old (error_description) and new (msg) GoTrue error bodies
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SignInWithPassword exchanges credentials for a session
func (c *GoTrueClient) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	body, err := c.post(ctx, "/auth/v1/token?grant_type=password", "", passwordRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
		ExpiresIn:    tr.ExpiresIn,
		UserID:       tr.User.ID,
		Email:        tr.User.Email,
	}, nil
}

// SignUp registers a new account. Depending on project settings the user
// may have to confirm the email before signing in.
func (c *GoTrueClient) SignUp(ctx context.Context, email, password string) error {
	_, err := c.post(ctx, "/auth/v1/signup", "", passwordRequest{Email: email, Password: password})
	return err
}

// SignOut revokes the session behind accessToken
func (c *GoTrueClient) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.post(ctx, "/auth/v1/logout", accessToken, nil)
	return err
}

func (c *GoTrueClient) post(ctx context.Context, path, bearer string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.supabaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request %s: %w: %v", path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var er errorResponse
	_ = json.Unmarshal(body, &er)
	msg := er.text()
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("auth request %s failed with status %d: %s: %w", path, resp.StatusCode, msg, domain.ErrUpstream)
	}
	return nil, &domain.AuthError{Message: msg, Raw: msg, Status: resp.StatusCode}
}
