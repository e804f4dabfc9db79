package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/openfoodfacts"
	"github.com/kidandcat/diametrics/internal/remote"
	"github.com/kidandcat/diametrics/internal/state"
	"github.com/kidandcat/diametrics/internal/view"
)

const maxPhotoBytes = 10 << 20

// handleAnalyzeFood logs every food the inference service recognises in a
// free-text meal description, one serving each. Saving stops at the first
// failure.
func (h *Handler) handleAnalyzeFood(w http.ResponseWriter, r *http.Request, d *dashboard) {
	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		d.store.SetAlert("Please describe what you ate")
		home(w, r)
		return
	}
	defer d.store.Begin(view.ControlAIFood)()

	found, err := h.inference.AnalyzeFood(r.Context(), description)
	if err != nil {
		h.finish(w, r, d, "Error analyzing food: ", err)
		return
	}
	date := d.store.Date(state.Nutrition)
	for _, f := range found {
		entry := model.NewNutritionEntry(date, f.Name, 1, f.Macros)
		if err := d.api.AddNutrition(r.Context(), entry); err != nil {
			h.finish(w, r, d, "Error saving nutrition data: ", err)
			return
		}
	}
	h.finish(w, r, d, "", nil)
}

func (h *Handler) handleAnalyzeActivity(w http.ResponseWriter, r *http.Request, d *dashboard) {
	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		d.store.SetAlert("Please describe your activity")
		home(w, r)
		return
	}
	date := formDay(r, "date", d.store.Date(state.Activity))
	if !date.Valid() {
		d.store.SetAlert("Please enter a valid date")
		home(w, r)
		return
	}
	defer d.store.Begin(view.ControlAIActivity)()

	res, err := h.inference.AnalyzeActivity(r.Context(), description)
	if err != nil {
		h.finish(w, r, d, "Error analyzing activity: ", err)
		return
	}
	if res.Minutes <= 0 || res.Calories < 0 {
		d.store.SetAlert("Could not work out the activity from that description")
		home(w, r)
		return
	}
	calories := res.Calories
	entry := model.ActivityEntry{
		Date:     date,
		Type:     res.ActivityType,
		Minutes:  res.Minutes,
		Calories: &calories,
	}
	h.finish(w, r, d, "Error saving activity data: ", d.api.AddActivity(r.Context(), entry))
}

func productPreview(p openfoodfacts.Product, servings float64) *state.ProductPreview {
	return &state.ProductPreview{
		Source:     "barcode",
		Barcode:    p.Barcode,
		Name:       p.Name,
		Brand:      p.Brand,
		ImageURL:   p.ImageURL,
		Serving:    model.Num(p.ServingSize) + p.ServingUnit,
		Servings:   servings,
		PerServing: p.PerServing(),
	}
}

// lookup fetches a product into the preview. A missing product becomes a
// not-found preview rather than an alert.
func (h *Handler) lookup(r *http.Request, d *dashboard, barcode string, servings float64) error {
	p, err := h.products.LookupBarcode(r.Context(), barcode)
	if errors.Is(err, openfoodfacts.ErrNotFound) {
		d.store.SetPreview(&state.ProductPreview{Source: "barcode", Barcode: barcode, NotFound: true})
		return nil
	}
	if err != nil {
		return err
	}
	d.store.SetPreview(productPreview(p, servings))
	return nil
}

func (h *Handler) handleBarcode(w http.ResponseWriter, r *http.Request, d *dashboard) {
	barcode := strings.TrimSpace(r.FormValue("barcode"))
	if barcode == "" {
		d.store.SetAlert("Please enter a barcode number")
		home(w, r)
		return
	}
	if !openfoodfacts.ValidBarcode(barcode) {
		d.store.SetAlert("Please enter a valid barcode number (digits only)")
		home(w, r)
		return
	}
	servings := formFloat(r, "servings")
	if servings <= 0 {
		servings = 1
	}
	defer d.store.Begin(view.ControlBarcode)()

	if err := h.lookup(r, d, barcode, servings); err != nil {
		h.logger.Warn("barcode lookup", zap.String("barcode", barcode), zap.Error(err))
		d.store.SetAlert("Error looking up barcode: " + remote.Message(err))
	}
	home(w, r)
}

func photoDataURL(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// handlePhoto reads a product photo. A readable nutrition label is used as
// is, named from the product database when the barcode is also legible;
// otherwise the barcode alone drives a regular lookup.
func (h *Handler) handlePhoto(w http.ResponseWriter, r *http.Request, d *dashboard) {
	image, err := photoDataURL(w, r)
	if err != nil {
		d.store.SetAlert("Please select a photo")
		home(w, r)
		return
	}
	defer d.store.Begin(view.ControlPhotoScan)()

	scan, err := h.inference.AnalyzeBarcodePhoto(r.Context(), image)
	if err != nil {
		h.logger.Warn("photo scan", zap.Error(err))
		d.store.SetAlert("Error scanning photo: " + remote.Message(err))
		home(w, r)
		return
	}

	switch {
	case scan.LabelRead():
		preview := &state.ProductPreview{
			Source:     "photo",
			Barcode:    scan.Barcode,
			Name:       scan.ProductName,
			Serving:    "1 serving",
			Servings:   1,
			PerServing: scan.Nutrition,
			Confidence: scan.Confidence,
		}
		if scan.Barcode != "" {
			if p, err := h.products.LookupBarcode(r.Context(), scan.Barcode); err == nil {
				preview.Name = p.Name
				preview.Brand = p.Brand
				preview.ImageURL = p.ImageURL
			}
		}
		if preview.Name == "" {
			preview.Name = "Scanned product"
		}
		d.store.SetPreview(preview)
	case scan.Barcode != "":
		servings := scan.Servings
		if servings <= 0 {
			servings = 1
		}
		if err := h.lookup(r, d, scan.Barcode, servings); err != nil {
			d.store.SetAlert("Error looking up barcode: " + remote.Message(err))
		}
	default:
		d.store.SetAlert("Could not find a barcode or nutrition label in the photo")
	}
	home(w, r)
}

func (h *Handler) handleAddPreview(w http.ResponseWriter, r *http.Request, d *dashboard) {
	p := d.store.Preview()
	if p == nil || p.NotFound {
		d.store.SetAlert("Look up a product first")
		home(w, r)
		return
	}
	servings := p.Servings
	if v := formOptional(r, "servings"); v != nil {
		servings = *v
	}
	entry := model.NewNutritionEntry(d.store.Date(state.Nutrition), p.Name, servings, p.PerServing)
	if err := entry.Validate(); err != nil {
		reject(w, r, d, err)
		return
	}
	if err := d.api.AddNutrition(r.Context(), entry); err != nil {
		h.finish(w, r, d, "Error adding food: ", err)
		return
	}
	d.store.SetPreview(nil)
	d.store.SetAlert("Food added successfully!")
	h.finish(w, r, d, "", nil)
}

func (h *Handler) handleClearPreview(w http.ResponseWriter, r *http.Request, d *dashboard) {
	d.store.SetPreview(nil)
	home(w, r)
}
