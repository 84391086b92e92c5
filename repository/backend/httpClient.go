package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelease_backend_requests_total",
		Help: "Requests sent to the REST backend by route and status",
	}, []string{"route", "status"})
	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelease_backend_request_seconds",
		Help:    "REST backend latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Body)
}

// Status returns the HTTP status carried by err, or 0 for transport failures.
func Status(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Body returns the trimmed response body carried by err.
func Body(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body
	}
	return ""
}

// ErrUnavailable wraps transport-level failures (refused, timeout, bad JSON).
var ErrUnavailable = errors.New("backend unavailable")

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// Do sends in as JSON (when non-nil) and decodes the answer into out (when
// non-nil). route is the metric label, path the concrete request path.
func (c *Client) Do(ctx context.Context, method, route, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", route, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	backendLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		backendCalls.WithLabelValues(route, "error").Inc()
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, route, err)
	}
	defer resp.Body.Close()
	backendCalls.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, route, err)
	}
	return nil
}
