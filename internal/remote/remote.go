// Package remote holds the resty transport shared by every collaborator
// client: base URL, timeout, bearer auth, error decoding and metrics.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/observability"
)

// ErrUnauthenticated is returned when a collaborator answers 401. Callers
// must discard the stored credentials and ask the user to log in again.
var ErrUnauthenticated = errors.New("unauthenticated")

// Error is a non-2xx collaborator answer. Message is the collaborator's own
// error text when it sent one.
type Error struct {
	Service string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s request failed with status %d", e.Service, e.Status)
}

// Message extracts the text to show a user for err.
func Message(err error) string {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Error()
	}
	return err.Error()
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Client struct {
	service string
	http    *resty.Client
	logger  *zap.Logger
}

func New(service, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		service: service,
		http:    httpClient,
		logger:  logger.With(zap.String("service", service)),
	}
}

// SetHeader adds a header sent with every request.
func (c *Client) SetHeader(key, value string) *Client {
	c.http.SetHeader(key, value)
	return c
}

// Call performs one request. A non-empty token is sent as a bearer token;
// body is encoded as JSON when non-nil and a 2xx answer is decoded into result.
func (c *Client) Call(ctx context.Context, method, path, token string, body, result any) error {
	return c.CallRoute(ctx, method, path, nil, token, body, result)
}

// CallRoute is Call for a route template such as "/product/{code}". params
// are path-escaped into the template, and metrics are labelled with the
// template rather than the expanded path.
func (c *Client) CallRoute(ctx context.Context, method, route string, params map[string]string, token string, body, result any) error {
	var eb errorBody
	req := c.http.R().SetContext(ctx).SetError(&eb)
	if len(params) > 0 {
		req.SetPathParams(params)
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	start := time.Now()
	resp, err := req.Execute(method, route)
	err = c.check(method, route, resp, err, &eb)
	observability.ObserveCall(c.service, method+" "+route, start, err)
	return err
}

func (c *Client) check(method, path string, resp *resty.Response, err error, eb *errorBody) error {
	if err != nil {
		c.logger.Error("collaborator call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.IsError() {
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		c.logger.Warn("collaborator returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("msg", msg),
		)
		return &Error{Service: c.service, Status: resp.StatusCode(), Message: msg}
	}
	return nil
}
