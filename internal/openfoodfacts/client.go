// Package openfoodfacts looks up packaged products by barcode in the Open
// Food Facts database.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/remote"
)

const DefaultBaseURL = "https://world.openfoodfacts.org"

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidBarcode = errors.New("barcode must contain only digits")
)

// ValidBarcode reports whether code looks like an EAN/UPC style barcode.
func ValidBarcode(code string) bool {
	if code == "" || len(code) > 32 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Product holds per-100g nutrients and the declared serving size.
type Product struct {
	Barcode     string
	Name        string
	Brand       string
	ImageURL    string
	ServingSize float64
	ServingUnit string
	Per100g     model.Macros
}

// PerServing scales the per-100g values to one declared serving.
func (p Product) PerServing() model.Macros {
	return p.Per100g.Scale(p.ServingSize / 100)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	rc := remote.New("openfoodfacts", baseURL, timeout, logger).
		SetHeader("User-Agent", "diametrics/1.0")
	return &Client{remote: rc}
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return Product{}, ErrNotFound
	}
	if !ValidBarcode(barcode) {
		return Product{}, ErrInvalidBarcode
	}
	var parsed offResponse
	err := c.remote.CallRoute(ctx, http.MethodGet, "/api/v2/product/{code}.json",
		map[string]string{"code": barcode}, "", nil, &parsed)
	var rerr *remote.Error
	if errors.As(err, &rerr) && rerr.Status == http.StatusNotFound {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("lookup barcode %s: %w", barcode, err)
	}
	if parsed.Status != 1 {
		return Product{}, ErrNotFound
	}

	p := parsed.Product
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "Product " + barcode
	}
	return Product{
		Barcode:     barcode,
		Name:        name,
		Brand:       strings.TrimSpace(p.Brands),
		ImageURL:    p.ImageURL,
		ServingSize: servingSize(p),
		ServingUnit: servingUnit(p),
		Per100g: model.Macros{
			Carbs:    nutrientValue(p.Nutriments, "carbohydrates_100g"),
			Protein:  nutrientValue(p.Nutriments, "proteins_100g"),
			Fat:      nutrientValue(p.Nutriments, "fat_100g"),
			Fiber:    nutrientValue(p.Nutriments, "fiber_100g"),
			Calories: nutrientValue(p.Nutriments, "energy-kcal_100g"),
		},
	}, nil
}

func servingSize(p offProduct) float64 {
	if v, ok := parseFloatAny(p.ServingQuantity); ok && v > 0 {
		return v
	}
	if v := nutrientValue(p.Nutriments, "serving_quantity"); v > 0 {
		return v
	}
	return 100
}

func servingUnit(p offProduct) string {
	if u := strings.TrimSpace(p.ServingQuantityUnit); u != "" {
		return u
	}
	return "g"
}

func nutrientValue(n map[string]any, key string) float64 {
	if v, ok := parseFloatAny(n[key]); ok {
		return v
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	Code                string         `json:"code"`
	ProductName         string         `json:"product_name"`
	Brands              string         `json:"brands"`
	ImageURL            string         `json:"image_url"`
	ServingQuantity     any            `json:"serving_quantity"`
	ServingQuantityUnit string         `json:"serving_quantity_unit"`
	Nutriments          map[string]any `json:"nutriments"`
}
