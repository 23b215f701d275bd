// Package client is a typed HTTP client for the resource manager API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

// ErrNotAuthenticated is returned by calls that need a session when none is active.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Session is the authenticated state of a Client: the bearer token and the user it belongs to.
type Session struct {
	Token string
	User  types.User
}

// Client talks to the API. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Entry

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for breaker state changes.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "resource-manager-api",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		// Client errors mean the API is up.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
	return c
}

// Session returns a copy of the active session, or nil.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	cp := *c.session
	return &cp
}

// Login exchanges credentials for a token and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	form := url.Values{"username": {email}, "password": {password}}

	var resp types.LoginResponse
	err := c.do(ctx, http.MethodPost, "/users/token", false, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}, strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, fmt.Errorf("login response is missing the token or user")
	}

	sess := &Session{Token: resp.AccessToken, User: *resp.User}
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()
	return c.Session(), nil
}

// Logout drops the session.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Me returns the authenticated user as the server sees it.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var u types.User
	if err := c.get(ctx, "/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users lists all users. Requires a manager session.
func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	var users []types.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Projects lists the projects visible to the session.
func (c *Client) Projects(ctx context.Context) ([]types.Project, error) {
	var projects []types.Project
	if err := c.get(ctx, "/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Assignments lists the assignments visible to the session.
func (c *Client) Assignments(ctx context.Context) ([]types.Assignment, error) {
	var assignments []types.Assignment
	if err := c.get(ctx, "/assignments", &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Capacity fetches an engineer's capacity report. A zero asOf lets the server pick today.
func (c *Client) Capacity(ctx context.Context, engineerID int64, asOf time.Time) (*allocation.CapacityReport, error) {
	path := "/engineers/" + strconv.FormatInt(engineerID, 10) + "/capacity"
	if !asOf.IsZero() {
		path += "?as_of=" + asOf.Format(types.DateLayout)
	}
	var report allocation.CapacityReport
	if err := c.get(ctx, path, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// FetchSnapshot loads users, projects and assignments in parallel.
func (c *Client) FetchSnapshot(ctx context.Context) (*types.Snapshot, error) {
	snap := &types.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Users, err = c.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Projects, err = c.Projects(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Assignments, err = c.Assignments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, true, nil, nil, out)
}

// do runs one request through the circuit breaker. A 401 ends the session.
func (c *Client) do(ctx context.Context, method, path string, authed bool, prepare func(*http.Request), body io.Reader, out any) error {
	var token string
	if authed {
		sess := c.Session()
		if sess == nil {
			return ErrNotAuthenticated
		}
		token = sess.Token
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if prepare != nil {
			prepare(req)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized && authed {
			c.Logout()
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		}
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil, nil
	})
	return err
}

func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
