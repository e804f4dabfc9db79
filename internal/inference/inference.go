// Package inference is the client of the AI and prediction service: food and
// activity parsing from free text, barcode photo reading and diabetes risk
// prediction.
package inference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/remote"
)

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{remote: remote.New("inference", baseURL, timeout, logger)}
}

// Food is one item recognised in a meal description. Amounts are for the
// portion described, so it is logged as one serving.
type Food struct {
	Name string `json:"name"`
	model.Macros
}

type describeRequest struct {
	Description string `json:"description"`
}

func (c *Client) AnalyzeFood(ctx context.Context, description string) ([]Food, error) {
	var out struct {
		Foods []Food `json:"foods"`
	}
	if err := c.remote.Call(ctx, http.MethodPost, "/analyze-food", "", describeRequest{description}, &out); err != nil {
		return nil, fmt.Errorf("analyze food: %w", err)
	}
	return out.Foods, nil
}

type Activity struct {
	ActivityType string  `json:"activity_type"`
	Minutes      float64 `json:"minutes"`
	Calories     float64 `json:"calories"`
}

func (c *Client) AnalyzeActivity(ctx context.Context, description string) (Activity, error) {
	var out Activity
	if err := c.remote.Call(ctx, http.MethodPost, "/analyze-activity", "", describeRequest{description}, &out); err != nil {
		return Activity{}, fmt.Errorf("analyze activity: %w", err)
	}
	return out, nil
}

// PhotoScan is what the service read from a product photo.
type PhotoScan struct {
	Barcode           string       `json:"barcode"`
	ProductName       string       `json:"product_name"`
	Servings          float64      `json:"servings"`
	HasNutritionLabel bool         `json:"has_nutrition_label"`
	Nutrition         model.Macros `json:"nutrition"`
	Confidence        string       `json:"confidence"`
}

// LabelRead reports whether usable nutrition values were read off the label.
func (p PhotoScan) LabelRead() bool {
	return p.HasNutritionLabel && p.Nutrition.Calories > 0
}

func (c *Client) AnalyzeBarcodePhoto(ctx context.Context, imageDataURL string) (PhotoScan, error) {
	var out PhotoScan
	body := map[string]string{"image": imageDataURL}
	if err := c.remote.Call(ctx, http.MethodPost, "/analyze-barcode-photo", "", body, &out); err != nil {
		return PhotoScan{}, fmt.Errorf("analyze barcode photo: %w", err)
	}
	return out, nil
}

// predictRequest uses the NHANES variable names the model was trained on.
type predictRequest struct {
	Gender    int      `json:"RIAGENDR"`
	Age       float64  `json:"RIDAGEYR"`
	Ethnicity int      `json:"RIDRETH1"`
	WeightKg  float64  `json:"BMXWT"`
	HeightCm  float64  `json:"BMXHT"`
	WaistCm   *float64 `json:"BMXWAIST"`
	HipCm     *float64 `json:"BMXHIP"`
	BMI       float64  `json:"BMXBMI"`
}

type Prediction struct {
	Probability float64 `json:"probability"`
	RiskLevel   int     `json:"risk_level"`
}

func (c *Client) Predict(ctx context.Context, in model.RiskInput) (Prediction, error) {
	req := predictRequest{
		Gender:    in.Gender,
		Age:       in.Age,
		Ethnicity: in.Ethnicity,
		WeightKg:  in.WeightKg,
		HeightCm:  in.HeightCm,
		WaistCm:   in.WaistCm,
		HipCm:     in.HipCm,
		BMI:       in.BMI(),
	}
	var out Prediction
	if err := c.remote.Call(ctx, http.MethodPost, "/predict", "", req, &out); err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	return out, nil
}
