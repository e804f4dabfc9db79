package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/remote"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestAnalyzeFood(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze-food", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "two eggs and toast", in["description"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"foods":[
			{"name":"Eggs","carbs":1,"protein":13,"fat":10,"fiber":0,"calories":143},
			{"name":"Toast","carbs":15,"protein":3,"fat":1,"fiber":2,"calories":80}]}`))
	})

	foods, err := c.AnalyzeFood(context.Background(), "two eggs and toast")

	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Eggs", foods[0].Name)
	assert.Equal(t, 143.0, foods[0].Calories)
	assert.Equal(t, 2.0, foods[1].Fiber)
}

func TestAnalyzeActivity(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"activity_type":"Running","minutes":30,"calories":300}`))
	})

	a, err := c.AnalyzeActivity(context.Background(), "ran 5k")

	require.NoError(t, err)
	assert.Equal(t, Activity{ActivityType: "Running", Minutes: 30, Calories: 300}, a)
}

func TestPredictSendsBMI(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 24.7, in["BMXBMI"])
		assert.Equal(t, 1.0, in["RIAGENDR"])
		assert.Nil(t, in["BMXWAIST"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"probability":0.31,"risk_level":4}`))
	})

	p, err := c.Predict(context.Background(), model.RiskInput{Gender: 1, Age: 45, Ethnicity: 3, WeightKg: 80, HeightCm: 180})

	require.NoError(t, err)
	assert.Equal(t, 4, p.RiskLevel)
	assert.Equal(t, 0.31, p.Probability)
}

func TestBarcodePhotoFailureCarriesMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"No image provided"}`))
	})

	_, err := c.AnalyzeBarcodePhoto(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, "No image provided", remote.Message(err))
}

func TestPhotoScanLabelRead(t *testing.T) {
	assert.False(t, PhotoScan{HasNutritionLabel: true}.LabelRead())
	assert.True(t, PhotoScan{HasNutritionLabel: true, Nutrition: model.Macros{Calories: 90}}.LabelRead())
}
