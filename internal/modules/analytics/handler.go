package analytics

import (
	"net/http"

	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, mw auth.Middlewares) {
	r.With(mw.Protect).Get("/analytics", h.report)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.service.Report(r.Context(), Query{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		GroupBy:   q.Get("groupBy"),
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
