package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/hexadmin/internal/product/application"
	productDomain "github.com/davicafu/hexadmin/internal/product/domain"
	"github.com/davicafu/hexadmin/internal/product/infra/outbound/db/sqlrepo"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/tests/mocks"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := mocks.NewTestDB(t, sqlrepo.Schema)
	repo := sqlrepo.NewProductRepo(db)

	registry := pagination.NewRegistry[sharedDomain.Criteria]()
	binding, err := pagination.Register[*productDomain.Product, sharedDomain.Criteria](registry, productDomain.Kind, repo)
	require.NoError(t, err)

	service := application.NewProductService(repo, binding, nil, zap.NewNop())
	r := gin.New()
	RegisterProductRoutes(r.Group("/api/v1"), NewProductHandler(service), func(c *gin.Context) { c.Next() })
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string                `json:"status"`
	Message interface{}           `json:"message"`
	Data    productDomain.Product `json:"data"`
}

func TestProductHandler_CRUD(t *testing.T) {
	r := newRouter(t)

	// Create
	w := do(r, http.MethodPost, "/api/v1/product/create", `{"name":"Camera","description":"4K"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, "Product successfully created", created.Message)
	id := created.Data.ID.String()

	// Detail
	w = do(r, http.MethodGet, "/api/v1/product/"+id+"/detail", "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail productDomain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Camera", detail.Name)

	// Update
	w = do(r, http.MethodPut, "/api/v1/product/"+id+"/update", `{"description":"8K"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Product successfully changed", updated.Message)
	assert.Equal(t, "8K", *updated.Data.Description)

	// Delete
	w = do(r, http.MethodDelete, "/api/v1/product/"+id+"/delete", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product successfully removed")

	w = do(r, http.MethodGet, "/api/v1/product/"+id+"/detail", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_List(t *testing.T) {
	r := newRouter(t)
	for _, name := range []string{"Alarm", "Camera", "Doorbell"} {
		require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/product/create", `{"name":"`+name+`"}`).Code)
	}

	w := do(r, http.MethodGet, "/api/v1/product?limit=2&sort=-name", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page pagination.Result[productDomain.Product]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, pagination.Meta{Total: 3, Page: 1, Limit: 2, TotalPages: 2, HasNext: true}, page.Meta)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Doorbell", page.Data[0].Name)

	w = do(r, http.MethodGet, "/api/v1/product?sort=secret", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Errors(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/product/create", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"failed","message":{"name":"Name is required"}}`, w.Body.String())

	do(r, http.MethodPost, "/api/v1/product/create", `{"name":"Camera"}`)
	w = do(r, http.MethodPost, "/api/v1/product/create", `{"name":"Camera"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"failed","message":"name can't be duplicated"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/product/not-a-uuid/detail", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/product/create", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
