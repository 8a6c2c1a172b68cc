// Package client is a typed HTTP client for the user service. It keeps the
// persisted session in sync with the server: login and register store it,
// and any 401 from a protected call clears it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/session"
	"github.com/dcastano/userhub-api/internal/validation"
)

var (
	// ErrSessionExpired means the server rejected the stored token; the
	// local session has already been cleared when this is returned.
	ErrSessionExpired = errors.New("session expired, log in again")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// APIError is a non-401 failure response from the server.
type APIError struct {
	Status  int
	Message string
	Errors  []validation.FieldError
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		parts := make([]string, len(e.Errors))
		for i, fe := range e.Errors {
			parts[i] = fe.Field + ": " + fe.Message
		}
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
	}
	return e.Message
}

type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
	token    string
}

func New(baseURL string, sessions *session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
	}
}

// Init loads the stored session and revalidates it by fetching the profile.
// A rejected token clears the stored state; the caller just sees "not
// logged in" (nil user).
func (c *Client) Init(ctx context.Context) (*dto.UserResponse, error) {
	sess, err := c.sessions.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	c.token = sess.Token
	user, err := c.Profile(ctx)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil, nil
		}
		return nil, err
	}

	// Refresh the snapshot with the server's copy.
	if err := c.sessions.Save(&session.Session{Token: c.token, User: *user}); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, error) {
	var data dto.AuthData
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &data, false); err != nil {
		return nil, err
	}
	if err := c.saveSession(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthData, error) {
	var data dto.AuthData
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &data, false); err != nil {
		return nil, err
	}
	if err := c.saveSession(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Profile(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", req, &user, true); err != nil {
		return nil, err
	}
	// Keep the stored snapshot current.
	if sess, err := c.sessions.Load(); err == nil && sess != nil {
		sess.User = user
		_ = c.sessions.Save(sess)
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context, page, limit int) (*dto.UserListData, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var data dto.UserListData
	if err := c.do(ctx, http.MethodGet, "/api/users?"+q.Encode(), nil, &data, true); err != nil {
		return nil, err
	}
	return &data, nil
}

// Logout discards the local session. There is nothing to revoke server-side;
// the token simply ages out.
func (c *Client) Logout() error {
	c.token = ""
	return c.sessions.Clear()
}

func (c *Client) saveSession(data *dto.AuthData) error {
	c.token = data.Token
	return c.sessions.Save(&session.Session{Token: data.Token, User: data.User})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if c.token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if authed && resp.StatusCode == http.StatusUnauthorized {
		c.token = ""
		_ = c.sessions.Clear()
		return ErrSessionExpired
	}

	var envelope struct {
		Success bool                    `json:"success"`
		Message string                  `json:"message"`
		Data    json.RawMessage         `json:"data"`
		Errors  []validation.FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		return &APIError{Status: resp.StatusCode, Message: envelope.Message, Errors: envelope.Errors}
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
