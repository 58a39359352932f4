package billing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/supermart-backend/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) router() http.Handler {
	mw := auth.Middlewares{
		Protect: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), cashier)))
			})
		},
		Admin: auth.RequireAdmin,
	}
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r, mw)
	return r
}

func TestBillingEndpoints(t *testing.T) {
	f := newFixture()
	rice := f.seed("Rice", 10)
	h := f.router()

	body := `{"customerName":"Walk-in","paymentMode":"upi",
		"items":[{"productId":"` + rice.ID.String() + `","quantity":3,"price":"20","gst":1.5,"total":60}],
		"totalAmount":60,"gstAmount":1.5,"netAmount":60}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var b Bill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, PaymentUPI, b.PaymentMode)
	assert.Equal(t, cashier.ID, b.User.ID)

	got, _ := f.catalog.Product(rice.ID)
	assert.Equal(t, 7, got.StockQuantity)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/billing/"+b.ID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/billing/"+b.ID.String(), nil))
	assert.JSONEq(t, `{"message":"Invoice removed"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/billing/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Invoice not found"}`, rec.Body.String())
}
