// Package api is the HTTP client for the remote task API.
//
// The backend exposes four calls:
//
//	GET    {base}/tasks       -> 200 {"tasks": [Task...]}
//	POST   {base}/tasks       -> 201 Task
//	PUT    {base}/tasks/{id}  -> 204
//	DELETE {base}/tasks/{id}  -> 204
//
// Each method performs exactly one round trip and never retries.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacksmith/tasklist/internal/model"
)

const (
	tracerName       = "github.com/jacksmith/tasklist/internal/api"
	defaultUserAgent = "tasklist"
)

// Operation names used in errors, logs and span names.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Client talks to the task API rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
// The default is a client without a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the [*slog.Logger] used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New returns a Client for baseURL.
// baseURL must be an absolute http or https URL; a trailing slash is ignored.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type listResponse struct {
	Tasks []model.Task `json:"tasks"`
}

type nameRequest struct {
	Name string `json:"name"`
}

// ListTasks fetches every task in server order.
func (c *Client) ListTasks(ctx context.Context) (model.Collection, error) {
	body, err := c.do(ctx, OpList, http.MethodGet, "/tasks", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Op: OpList, Err: err}
	}
	return model.Collection(resp.Tasks).Clone(), nil
}

// CreateTask creates a task named name and returns the stored record.
// The name is sent as-is.
func (c *Client) CreateTask(ctx context.Context, name string) (model.Task, error) {
	body, err := c.do(ctx, OpCreate, http.MethodPost, "/tasks", nameRequest{Name: name}, http.StatusCreated)
	if err != nil {
		return model.Task{}, err
	}

	var task model.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return model.Task{}, &DecodeError{Op: OpCreate, Err: err}
	}
	if task.ID == "" {
		return model.Task{}, &DecodeError{Op: OpCreate, Err: fmt.Errorf("task record has no id")}
	}
	return task, nil
}

// UpdateTask renames task id.
func (c *Client) UpdateTask(ctx context.Context, id, name string) error {
	_, err := c.do(ctx, OpUpdate, http.MethodPut, taskPath(id), nameRequest{Name: name}, http.StatusNoContent)
	return err
}

// DeleteTask deletes task id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, OpDelete, http.MethodDelete, taskPath(id), nil, http.StatusNoContent)
	return err
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// do sends one request and returns the response body when the status equals
// want. Any other status is a *StatusError.
func (c *Client) do(ctx context.Context, op, method, path string, payload any, want int) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "tasklist.api."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	body, err := c.roundTrip(ctx, span, op, method, path, payload, want)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, span trace.Span, op, method, path string, payload any, want int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "sending request", "op", op, "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != want {
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Want: want, Status: resp.Status}
	}

	c.logger.DebugContext(ctx, "request succeeded", "op", op, "status", resp.StatusCode)
	return body, nil
}
