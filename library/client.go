package library

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"library-console/pkg/logger"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/backend_mock.go -package=mocks . Backend

// Backend is the library API as seen by the view slices.
type Backend interface {
	GetBook(ctx context.Context, id string) (*Book, error)
	CreateBook(ctx context.Context, book NewBook) error
	UpdateBook(ctx context.Context, id string, draft BookDraft) error
	DeleteBook(ctx context.Context, id string) error

	GetUser(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, user UserDraft) error
	UpdateUser(ctx context.Context, id string, draft UserDraft) error
	DeleteUser(ctx context.Context, id string) error

	Borrow(ctx context.Context, userID, bookID string) error
	Return(ctx context.Context, userID, bookID string) error

	BorrowedByName(ctx context.Context, name string) ([]TitleItem, error)
	Statistic(ctx context.Context) ([]StatisticEntry, error)
	DistinctTitles(ctx context.Context) ([]TitleItem, error)
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.Path, e.Code)
}

// Client talks to the library API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	tracer  trace.Tracer
}

var _ Backend = (*Client)(nil)

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// NewClient creates a client for the API at baseURL. A nil httpClient gets a
// client without a timeout.
func NewClient(baseURL string, httpClient *http.Client, l *zap.Logger, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  l,
		tracer:  otel.Tracer("library-console/library"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, "/book/{id}", "/book/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	book.ID = id
	return &book, nil
}

func (c *Client) CreateBook(ctx context.Context, book NewBook) error {
	return c.do(ctx, http.MethodPost, "/book/create", "/book/create", book, nil)
}

func (c *Client) UpdateBook(ctx context.Context, id string, draft BookDraft) error {
	return c.do(ctx, http.MethodPut, "/book/{id}", "/book/"+url.PathEscape(id), draft, nil)
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/book/{id}", "/book/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var raw jsoniter.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user/{id}", "/user/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, err
	}
	user, err := decodeUser(id, raw)
	if err != nil {
		return nil, fmt.Errorf("decode user %q: %w", id, err)
	}
	return user, nil
}

func (c *Client) CreateUser(ctx context.Context, user UserDraft) error {
	return c.do(ctx, http.MethodPost, "/user/create", "/user/create", user, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id string, draft UserDraft) error {
	return c.do(ctx, http.MethodPut, "/user/{id}", "/user/"+url.PathEscape(id), draft, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/{id}", "/user/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Borrow(ctx context.Context, userID, bookID string) error {
	path := fmt.Sprintf("/borrowing/user/%s/book/%s", url.PathEscape(userID), url.PathEscape(bookID))
	return c.do(ctx, http.MethodPost, "/borrowing/user/{userId}/book/{bookId}", path, nil, nil)
}

func (c *Client) Return(ctx context.Context, userID, bookID string) error {
	path := fmt.Sprintf("/borrowing/return/user/%s/book/%s", url.PathEscape(userID), url.PathEscape(bookID))
	return c.do(ctx, http.MethodDelete, "/borrowing/return/user/{userId}/book/{bookId}", path, nil, nil)
}

func (c *Client) BorrowedByName(ctx context.Context, name string) ([]TitleItem, error) {
	var items []TitleItem
	if err := c.do(ctx, http.MethodPost, "/borrowing/name", "/borrowing/name", UserDraft{Name: name}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Statistic(ctx context.Context) ([]StatisticEntry, error) {
	var entries []StatisticEntry
	if err := c.do(ctx, http.MethodGet, "/borrowing/statistic", "/borrowing/statistic", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) DistinctTitles(ctx context.Context) ([]TitleItem, error) {
	var items []TitleItem
	if err := c.do(ctx, http.MethodGet, "/borrowing/titles/distinct", "/borrowing/titles/distinct", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// do sends one request. in, when non-nil, is sent as a JSON body; out, when
// non-nil, receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, route, path string, in, out any) error {
	traceID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("trace_id", traceID),
		))
	defer span.End()

	start := time.Now()
	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorRequest(c.logger, err, "api request failed", traceID, method, path, time.Since(start))
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fail(fmt.Errorf("encode %s %s: %w", method, path, err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fail(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fail(&StatusError{Method: method, Path: path, Code: resp.StatusCode})
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fail(fmt.Errorf("decode %s %s: %w", method, path, err))
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	logger.InfoRequest(c.logger, "api request", traceID, method, path, resp.StatusCode, time.Since(start))
	return nil
}
