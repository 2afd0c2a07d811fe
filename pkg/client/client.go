// Package client is a typed HTTP client for the projecthub API. It decodes
// the data/message envelopes the server emits and surfaces non-2xx replies
// as *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to a projecthub server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, typically after Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// AutoJoin joins the team identified by teamCode as the registered owner
// of email. No session is required.
func (c *Client) AutoJoin(ctx context.Context, teamCode, email string) (*entities.AutoJoinResult, error) {
	var result entities.AutoJoinResult
	err := c.do(ctx, http.MethodPost, "/api/team/auto-join/"+url.PathEscape(teamCode),
		entities.AutoJoinInput{Email: email}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTeamByProject fetches the team owned by a project, members populated.
func (c *Client) GetTeamByProject(ctx context.Context, projectID uuid.UUID) (*entities.Team, error) {
	var team entities.Team
	err := c.do(ctx, http.MethodGet, "/api/team/"+projectID.String(), nil, &team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// LeaveTeam removes the authenticated caller from a project's team. The
// server only accepts userID matching the session identity.
func (c *Client) LeaveTeam(ctx context.Context, projectID, userID uuid.UUID) (*entities.LeaveResult, error) {
	var result entities.LeaveResult
	path := "/api/team/" + projectID.String() + "/members/" + userID.String()
	if err := c.do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates and stores the returned access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*entities.AuthResponse, error) {
	var resp entities.AuthResponse
	body := entities.LoginInput{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken != "" {
		c.token = resp.AccessToken
	}
	return &resp, nil
}

// Profile returns the identity behind the client's token.
func (c *Client) Profile(ctx context.Context) (*entities.User, error) {
	var user entities.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, projectID uuid.UUID) (*entities.Project, error) {
	var project entities.Project
	if err := c.do(ctx, http.MethodGet, "/api/project/"+projectID.String(), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]entities.Project, error) {
	var projects []entities.Project
	if err := c.do(ctx, http.MethodGet, "/api/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	return json.Unmarshal(envelope.Data, out)
}
