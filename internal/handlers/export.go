package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/export"
)

// document builds the export of everything currently loaded, loading first
// when the store is still empty.
func (h *Handler) document(w http.ResponseWriter, r *http.Request, d *dashboard) (export.Document, bool) {
	if !d.store.Loaded() && !h.refresh(r.Context(), w, r, d) {
		return export.Document{}, false
	}
	return export.NewDocument(d.session.Username, h.today(), d.store.Data()), true
}

func (h *Handler) serveExport(w http.ResponseWriter, r *http.Request, d *dashboard, ext, contentType string, attach bool, write func(*bytes.Buffer, export.Document) error) {
	doc, ok := h.document(w, r, d)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, doc); err != nil {
		h.logger.Error("export", zap.String("format", ext), zap.String("user", d.session.Username), zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if attach {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename(ext)))
	}
	buf.WriteTo(w)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request, d *dashboard) {
	h.serveExport(w, r, d, "csv", "text/csv; charset=utf-8", true, func(b *bytes.Buffer, doc export.Document) error {
		return export.WriteCSV(b, doc)
	})
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request, d *dashboard) {
	h.serveExport(w, r, d, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true, func(b *bytes.Buffer, doc export.Document) error {
		return export.WriteXLSX(b, doc)
	})
}

func (h *Handler) handleExportReport(w http.ResponseWriter, r *http.Request, d *dashboard) {
	h.serveExport(w, r, d, "html", "text/html; charset=utf-8", false, func(b *bytes.Buffer, doc export.Document) error {
		return export.WriteReport(b, doc)
	})
}
