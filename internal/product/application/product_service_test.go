package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	productDomain "github.com/davicafu/hexadmin/internal/product/domain"
	"github.com/davicafu/hexadmin/internal/product/infra/outbound/db/sqlrepo"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/pkg/utils"
	"github.com/davicafu/hexadmin/tests/mocks"
)

type fixture struct {
	service *ProductService
	cache   *mocks.DummyCache
	t       *testing.T
}

func newFixture(t *testing.T) *fixture {
	db := mocks.NewTestDB(t, sqlrepo.Schema)
	repo := sqlrepo.NewProductRepo(db)

	registry := pagination.NewRegistry[sharedDomain.Criteria]()
	binding, err := pagination.Register[*productDomain.Product, sharedDomain.Criteria](registry, productDomain.Kind, repo)
	require.NoError(t, err)

	cache := mocks.NewDummyCache()
	return &fixture{service: NewProductService(repo, binding, cache, zap.NewNop()), cache: cache, t: t}
}

func ptr(s string) *string { return &s }

func (f *fixture) create(name string) *productDomain.Product {
	p, err := f.service.CreateProduct(context.Background(), productDomain.ProductInput{Name: ptr(name)})
	require.NoError(f.t, err)
	return p
}

func TestCreateProduct_Success(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	p, err := f.service.CreateProduct(context.Background(), productDomain.ProductInput{
		Name:        ptr("  Smart Lock "),
		Description: ptr("Keyless entry"),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Smart Lock", p.Name)
	assert.Equal(t, "Keyless entry", *p.Description)
	assert.NotEqual(t, uuid.Nil, p.ID)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateProduct(context.Background(), productDomain.ProductInput{})
	assert.Equal(t, utils.FieldErrors{"name": "Name is required"}, err)

	_, err = f.service.CreateProduct(context.Background(), productDomain.ProductInput{Name: ptr("")})
	assert.Equal(t, utils.FieldErrors{"name": "Name is required"}, err)
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	f := newFixture(t)
	f.create("Firewall")

	_, err := f.service.CreateProduct(context.Background(), productDomain.ProductInput{Name: ptr("Firewall")})

	assert.ErrorIs(t, err, sharedDomain.ErrAlreadyExists)
	assert.EqualError(t, err, "name can't be duplicated")
}

func TestListProducts_SearchAndPaging(t *testing.T) {
	// Arrange
	f := newFixture(t)
	for i := 1; i <= 12; i++ {
		f.create(fmt.Sprintf("Camera %02d", i))
	}
	f.create("Router")

	// Act
	res, err := f.service.ListProducts(context.Background(), pagination.Request[sharedDomain.Criteria]{
		Page: 2, Limit: 5, Filter: sharedDomain.Search("CAMERA", productDomain.SearchFields...),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, pagination.Meta{Total: 12, Page: 2, Limit: 5, TotalPages: 3, HasNext: true, HasPrev: true}, res.Meta)
	require.Len(t, res.Data, 5)
	assert.Equal(t, "Camera 06", res.Data[0].Name)
}

func TestGetProduct_CacheMissThenHit(t *testing.T) {
	f := newFixture(t)
	p := f.create("Sensor")

	got, err := f.service.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sensor", got.Name)

	assert.Eventually(t, func() bool { return f.cache.Has(productDomain.CacheKeyByID(p.ID)) }, time.Second, 5*time.Millisecond)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetProduct(context.Background(), uuid.New())

	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
	assert.EqualError(t, err, "product not found")
}

func TestUpdateProduct_Partial(t *testing.T) {
	// Arrange
	f := newFixture(t)
	p, err := f.service.CreateProduct(context.Background(), productDomain.ProductInput{Name: ptr("Old"), Description: ptr("keep me")})
	require.NoError(t, err)

	// Act
	updated, err := f.service.UpdateProduct(context.Background(), p.ID, productDomain.ProductInput{Name: ptr("New")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "keep me", *updated.Description)

	_, err = f.service.UpdateProduct(context.Background(), p.ID, productDomain.ProductInput{Name: ptr("")})
	assert.Equal(t, utils.FieldErrors{"name": "Name is required"}, err)

	_, err = f.service.UpdateProduct(context.Background(), uuid.New(), productDomain.ProductInput{Name: ptr("x")})
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	p := f.create("Gone")

	deleted, err := f.service.DeleteProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	_, err = f.service.DeleteProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}
