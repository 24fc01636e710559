package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Richard-avalos/legendme-login-svc/internal/errs"
	"github.com/Richard-avalos/legendme-login-svc/internal/logger"
)

const internalTokenHeader = "X-Internal-Token"

var (
	// ErrConflict is returned when the directory already holds the email
	// or username being created.
	ErrConflict = errors.New("directory: conflict")
	// ErrNotFound is returned when no profile exists for the lookup key.
	ErrNotFound = errors.New("directory: profile not found")
)

// Profile is the remote user record owned by the users service. The login
// service reads and creates profiles through this client but never treats
// its own copy as authoritative.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Provider  string `json:"provider"`
	Active    bool   `json:"active"`
}

// CreateLocalUserParams carries the fields for creating a LOCAL-provider
// profile. The plaintext password is forwarded to the directory, which owns
// its own credential handling for other services.
type CreateLocalUserParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Provider  string `json:"provider"`
	Active    bool   `json:"active"`
}

// GoogleUserParams carries the verified Google claims for a profile upsert
// keyed by the Google subject.
type GoogleUserParams struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"emailVerified"`
}

// Client talks to the users service over HTTP. Every call carries the
// shared internal-service token and a bounded timeout.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, internalToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   internalToken,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	err := c.post(ctx, "/internal/users/exists-by-email", map[string]string{"email": email}, &out)
	if err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	err := c.post(ctx, "/internal/users/exists-by-username", map[string]string{"username": username}, &out)
	if err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) CreateLocalUser(ctx context.Context, params CreateLocalUserParams) (Profile, error) {
	params.Provider = "LOCAL"
	params.Active = true

	var profile Profile
	if err := c.post(ctx, "/internal/users/local", params, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) FindByEmail(ctx context.Context, email string) (Profile, error) {
	endpoint := c.baseURL + "/internal/users/by-email?email=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, errs.ErrUpstreamUnavailable.WithCause(err)
	}
	req.Header.Set(internalTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return Profile{}, errs.ErrUpstreamUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Profile{}, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Profile{}, c.unexpectedStatus("find by email", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Profile{}, errs.ErrUpstreamUnavailable.WithCause(err)
	}
	return profile, nil
}

func (c *Client) UpsertGoogleUser(ctx context.Context, params GoogleUserParams) (Profile, error) {
	var profile Profile
	if err := c.post(ctx, "/internal/users/google", params, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.ErrUpstreamUnavailable.WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.ErrUpstreamUnavailable.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(internalTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.ErrUpstreamUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return ErrConflict
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.unexpectedStatus(path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.ErrUpstreamUnavailable.WithCause(err)
	}
	return nil
}

func (c *Client) unexpectedStatus(op string, status int) error {
	logger.Error("users service returned unexpected status", map[string]any{
		"op":     op,
		"status": status,
	})
	return errs.ErrUpstreamUnavailable.WithCause(fmt.Errorf("%s: status %d", op, status))
}
