package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New("api", srv.URL, 5*time.Second, zap.NewNop())
}

func TestCallSendsBearerAndDecodesResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["msg"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":"hello"}`))
	})

	var out struct {
		Echo string `json:"echo"`
	}
	err := c.Call(context.Background(), http.MethodPost, "/echo", "tok", map[string]string{"msg": "hello"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hello", out.Echo)
}

func TestCallMapsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid or expired token"}`))
	})

	err := c.Call(context.Background(), http.MethodGet, "/data/glucose", "stale", nil, nil)

	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestCallCarriesCollaboratorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Date and value required"}`))
	})

	err := c.Call(context.Background(), http.MethodPost, "/data/glucose", "tok", map[string]any{}, nil)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
	assert.Equal(t, "Date and value required", Message(err))
}

func TestCallWithoutErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Call(context.Background(), http.MethodGet, "/x", "", nil, nil)

	assert.EqualError(t, err, "api request failed with status 502")
}

func TestCallRouteEscapesParamsAndLabelsByRoute(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/a b.json", r.URL.Path)
		assert.Equal(t, "/product/a%20b.json", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	err := c.CallRoute(context.Background(), http.MethodGet, "/product/{code}.json",
		map[string]string{"code": "a b"}, "", nil, nil)
	require.NoError(t, err)

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var operations []string
	for _, mf := range mfs {
		if mf.GetName() != "diametrics_collaborator_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "operation" {
					operations = append(operations, l.GetValue())
				}
			}
		}
	}
	assert.Contains(t, operations, "GET /product/{code}.json")
	for _, op := range operations {
		assert.NotContains(t, op, "a b")
	}
}
