// Package client fetches graphs from a columnview API server.
//
// [Client] implements session.Source, so a viewer can run against a remote
// server exactly as it runs against a local store:
//
//	c, err := client.New("http://localhost:8080", nil)
//	s := session.New(c, runner, logger)
//
// Transient failures (network errors and 5xx responses) are retried with
// exponential backoff. Errors carry pkg/errors codes: NOT_FOUND for 404,
// TIMEOUT when the context deadline passes and UNAVAILABLE for everything
// else, including malformed response bodies.
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
	"time"

	"github.com/charmbracelet/log"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/httputil"
	"github.com/matzehuels/columnview/pkg/observability"
)

const (
	httpTimeout     = 10 * time.Second
	maxResponseSize = 32 << 20
)

// Client talks to the /api/graphs endpoints of a columnview server.
type Client struct {
	// Attempts is the number of tries per request (default 3).
	Attempts int
	// Delay is the initial backoff between tries (default 1s, doubling).
	Delay time.Duration

	base   *url.URL
	http   *http.Client
	logger *log.Logger
}

// New creates a client for the server at baseURL. A nil logger uses log.Default.
func New(baseURL string, logger *log.Logger) (*Client, error) {
	if err := cverr.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeInvalidInput, err, "invalid server URL %q", baseURL)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		Attempts: 3,
		Delay:    time.Second,
		base:     u,
		http:     &http.Client{Timeout: httpTimeout},
		logger:   logger,
	}, nil
}

// List returns the IDs of all graphs on the server.
func (c *Client) List(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.getJSON(ctx, "/api/graphs", &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// Get returns graph id.
func (c *Client) Get(ctx context.Context, id int) (graph.Graph, error) {
	var g graph.Graph
	if err := c.getJSON(ctx, "/api/graphs/"+strconv.Itoa(id), &g); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// Close implements store.Store. The client holds no resources.
func (c *Client) Close() error { return nil }

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	err := httputil.Retry(ctx, max(c.Attempts, 1), c.Delay, func() error {
		return c.fetch(ctx, path, v)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return cverr.Wrap(cverr.ErrCodeTimeout, err, "GET %s timed out", path)
	}
	if cverr.GetCode(err) == "" {
		return cverr.Wrap(cverr.ErrCodeUnavailable, err, "GET %s", path)
	}
	return err
}

func (c *Client) fetch(ctx context.Context, path string, v any) error {
	target := c.base.JoinPath(path)
	host := target.Host

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return cverr.Wrap(cverr.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		c.logger.Debug("request failed", "path", path, "error", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httputil.Retryable(cverr.Wrap(cverr.ErrCodeNetwork, err, "GET %s", path))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, path); err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return httputil.Retryable(cverr.Wrap(cverr.ErrCodeNetwork, err, "read %s", path))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return cverr.Wrap(cverr.ErrCodeUnavailable, err, "malformed response from %s", path)
	}
	return nil
}

func checkStatus(code int, path string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return cverr.New(cverr.ErrCodeNotFound, "%s not found", path)
	case code >= 500:
		return httputil.Retryable(cverr.New(cverr.ErrCodeUnavailable, "%s: status %d", path, code))
	default:
		return cverr.New(cverr.ErrCodeUnavailable, "%s: %s", path, statusText(code))
	}
}

func statusText(code int) string {
	return fmt.Sprintf("status %d %s", code, http.StatusText(code))
}
