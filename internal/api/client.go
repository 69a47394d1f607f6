package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrAPIUnavailable reports that no daemon API is configured or reachable.
var ErrAPIUnavailable = errors.New("brandsort API unavailable")

// Client talks to a running brandsort daemon.
type Client struct {
	base *url.URL
	http *http.Client
}

// StreamQuery selects a page of log events.
type StreamQuery struct {
	Since     uint64
	Limit     int
	Follow    bool
	Tail      bool
	Component string
	RunID     string
	Stage     string
}

// StatusError carries a non-2xx reply from the daemon.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Code)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Code, e.Message)
}

// NewClient builds a client for bind ("host:port" or a URL). An empty bind
// yields a nil client whose calls return ErrAPIUnavailable. The HTTP client has
// no timeout because follow requests block until an event arrives.
func NewClient(bind string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, nil
	}
	if _, _, ok := strings.Cut(bind, "://"); !ok {
		bind = "http://" + bind
	}
	parsed, err := url.Parse(bind)
	if err != nil {
		return nil, fmt.Errorf("parse api address %q: %w", bind, err)
	}
	return &Client{base: &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}, http: new(http.Client)}, nil
}

// Organize submits root for organizing.
func (c *Client) Organize(ctx context.Context, root string) (OrganizeResponse, error) {
	var resp OrganizeResponse
	body, err := json.Marshal(OrganizeRequest{Root: root})
	if err != nil {
		return resp, err
	}
	err = c.do(ctx, http.MethodPost, "/api/organize", nil, bytes.NewReader(body), &resp)
	return resp, err
}

// Status fetches the current run status.
func (c *Client) Status(ctx context.Context) (RunStatus, error) {
	var resp RunStatus
	err := c.do(ctx, http.MethodGet, "/api/status", nil, nil, &resp)
	return resp, err
}

// Logs fetches one page of log events.
func (c *Client) Logs(ctx context.Context, q StreamQuery) (LogStreamResponse, error) {
	var resp LogStreamResponse
	err := c.do(ctx, http.MethodGet, "/api/logs", q.values(), nil, &resp)
	return resp, err
}

func (q StreamQuery) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			v.Set(key, value)
		}
	}
	if q.Since > 0 {
		set("since", strconv.FormatUint(q.Since, 10))
	}
	if q.Limit > 0 {
		set("limit", strconv.Itoa(q.Limit))
	}
	if q.Follow {
		set("follow", "1")
	}
	if q.Tail {
		set("tail", "1")
	}
	set("component", q.Component)
	set("run_id", q.RunID)
	set("stage", q.Stage)
	return v
}

// do sends one request and decodes a JSON reply into out. Replies of 400 and
// above become a *StatusError carrying the server's error message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) error {
	if c == nil {
		return ErrAPIUnavailable
	}
	target := *c.base
	target.Path, target.RawQuery = path, query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		var failure ErrorResponse
		_ = dec.Decode(&failure)
		return &StatusError{Code: resp.StatusCode, Message: failure.Error}
	}
	if out == nil {
		return nil
	}
	return dec.Decode(out)
}

// IsAPIUnavailable reports whether err means the daemon could not be reached:
// no API configured, or a network error dialing it.
func IsAPIUnavailable(err error) bool {
	var opErr *net.OpError
	return errors.Is(err, ErrAPIUnavailable) || errors.As(err, &opErr)
}
