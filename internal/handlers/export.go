package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dudafacio/rsvp-api/internal/attendees"
	"github.com/dudafacio/rsvp-api/internal/export"
	"github.com/go-chi/chi/v5"
)

// ExportHandler serves the printable confirmed-attendee list. These are
// file-download routes, registered as plain chi handlers.
type ExportHandler struct {
	lister    *attendees.Lister
	renderers map[string]export.Renderer
}

func NewExportHandler(lister *attendees.Lister) *ExportHandler {
	return &ExportHandler{
		lister: lister,
		renderers: map[string]export.Renderer{
			"pdf":  export.PDFRenderer{},
			"docx": export.DOCXRenderer{},
			"xlsx": export.XLSXRenderer{},
		},
	}
}

// HandleConfirmedExport renders GET /guests/export/confirmed.{format}.
// ?tables=true annotates each name with its table assignment.
func (h *ExportHandler) HandleConfirmedExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	renderer, ok := h.renderers[format]
	if !ok {
		http.Error(w, "Unknown export format: "+format, http.StatusNotFound)
		return
	}

	var items []string
	var err error
	if r.URL.Query().Get("tables") == "true" {
		items, err = h.lister.LabelsWithTables()
	} else {
		items, err = h.lister.ConfirmedNames()
	}
	if err != nil {
		http.Error(w, "Failed to build attendee list", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	doc := export.Document{
		Title: "Convidados confirmados",
		Meta: []string{
			fmt.Sprintf("Total: %d", len(items)),
			"Gerado em: " + now.Format("02/01/2006 15:04"),
		},
		Items:      items,
		TwoColumns: format == "pdf",
	}

	data, err := renderer.Render(doc)
	if err != nil {
		log.Printf("Failed to render %s export: %v", format, err)
		http.Error(w, "Failed to render document", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("confirmados-%s.%s", now.Format("2006-01-02_15-04"), renderer.Extension())
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
