package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/georgemunganga/supermart-backend/internal/modules/auth"
	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportEndpoint(t *testing.T) {
	repo := &memoryRepo{sales: []sale{{at: at(17, 11), net: 120, gst: 6, mode: "UPI"}}}
	clerk := &user.User{ID: uuid.New(), Role: user.RoleStaff}
	mw := auth.Middlewares{
		Protect: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), clerk)))
			})
		},
		Admin: auth.RequireAdmin,
	}
	r := chi.NewRouter()
	NewHandler(newTestService(repo)).RegisterRoutes(r, mw)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics?startDate=2026-03-17&endDate=2026-03-17&groupBy=weekly", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"range", "paymentModes", "trendData", "dayReport", "today", "monthly", "topProducts", "expenses"} {
		assert.Contains(t, body, key)
	}
	assert.JSONEq(t, `[{"name":"2026-W12","val":120,"expense":0}]`, string(body["trendData"]))
	assert.JSONEq(t, `[]`, string(body["expenses"]))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics?groupBy=yearly", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
