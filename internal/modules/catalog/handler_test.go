package catalog_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/supermart-backend/internal/modules/auth"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog"
	"github.com/georgemunganga/supermart-backend/internal/modules/catalog/catalogtest"
	"github.com/georgemunganga/supermart-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(store *catalogtest.Store) http.Handler {
	staff := &user.User{ID: uuid.New(), Name: "Clerk", Role: user.RoleStaff}
	mw := auth.Middlewares{
		Protect: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), staff)))
			})
		},
		Admin: auth.RequireAdmin,
	}
	r := chi.NewRouter()
	catalog.NewHandler(catalog.NewService(store)).RegisterRoutes(r, mw)
	return r
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProductEndpoints(t *testing.T) {
	store := catalogtest.NewStore()
	h := newRouter(store)

	body := `{"name":"Sugar","category":"Grocery","costPrice":"40","sellingPrice":46,"stockQuantity":25,"expiryDate":"2027-05-01"}`
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 40.0, created.CostPrice)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/products?search=sug", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/products/not-an-id", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"x","colour":"red"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/products/"+created.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted"}`, rec.Body.String())
}

func TestCategoryEndpoints(t *testing.T) {
	h := newRouter(catalogtest.NewStore())

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Snacks"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var c catalog.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"snacks"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Category already exists"}`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/categories/"+c.ID.String(), nil))
	assert.JSONEq(t, `{"message":"Category removed"}`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/categories/"+c.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkImportEndpoint(t *testing.T) {
	store := catalogtest.NewStore()
	h := newRouter(store)

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	part, err := mp.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/bulk-import", &buf)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	rec := serve(h, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Products imported successfully","count":2}`, rec.Body.String())
	assert.Len(t, store.AllProducts(), 2)
	assert.Len(t, store.AllCategories(), 1)

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/products/bulk-import", strings.NewReader("")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
