package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL, 5*time.Second, zap.NewNop())
}

func TestLookupBarcodeScalesToServing(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/737628064502.json", r.URL.Path)
		assert.Equal(t, "diametrics/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Peanut Noodles",
    "brands": "Thai Kitchen",
    "serving_quantity": "50",
    "nutriments": {
      "energy-kcal_100g": 400,
      "carbohydrates_100g": 60,
      "proteins_100g": 10,
      "fat_100g": 12,
      "fiber_100g": 4
    }
  }
}`))
	})

	p, err := c.LookupBarcode(context.Background(), "737628064502")
	require.NoError(t, err)

	assert.Equal(t, "Peanut Noodles", p.Name)
	assert.Equal(t, 50.0, p.ServingSize)
	assert.Equal(t, "g", p.ServingUnit)
	per := p.PerServing()
	assert.Equal(t, 200.0, per.Calories)
	assert.Equal(t, 30.0, per.Carbs)
	assert.Equal(t, 2.0, per.Fiber)
}

func TestLookupBarcodeDefaultsServingTo100g(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":1,"product":{"nutriments":{"energy-kcal_100g":120}}}`))
	})

	p, err := c.LookupBarcode(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "Product 123", p.Name)
	assert.Equal(t, 120.0, p.PerServing().Calories)
}

func TestLookupBarcodeNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/v2/product/404.json" {
			w.WriteHeader(http.StatusNotFound)
		}
		_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	})

	_, err := c.LookupBarcode(context.Background(), "000")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.LookupBarcode(context.Background(), "404")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLookupBarcodeRejectsNonDigits(t *testing.T) {
	calls := 0
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	for _, code := range []string{"../admin", "12ab", "737628064502?x=1"} {
		_, err := c.LookupBarcode(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidBarcode, code)
	}
	assert.Zero(t, calls)
	assert.True(t, ValidBarcode("5000159484695"))
}
