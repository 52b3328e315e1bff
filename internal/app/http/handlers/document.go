package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"orcafacil/go_backend/internal/app/http/middleware"
)

func (h *Handlers) Document(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Quote(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pdfBytes, err := h.PDF.Generate(q)
	if err != nil {
		h.Log.Error("quote pdf failed", zap.String("quote", q.Number), zap.Error(err))
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, q.Number))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
