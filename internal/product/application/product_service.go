package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	productDomain "github.com/davicafu/hexadmin/internal/product/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/pkg/utils"
)

const cacheTTL = 120

// ProductService define los casos de uso del catálogo de productos.
type ProductService struct {
	repo    productDomain.ProductRepository
	binding *pagination.Binding[*productDomain.Product, sharedDomain.Criteria]
	cache   sharedCache.Cache
	log     *zap.Logger
}

func NewProductService(
	repo productDomain.ProductRepository,
	binding *pagination.Binding[*productDomain.Product, sharedDomain.Criteria],
	cache sharedCache.Cache,
	log *zap.Logger,
) *ProductService {
	return &ProductService{repo: repo, binding: binding, cache: cache, log: log}
}

// ListProducts devuelve una página de productos.
func (s *ProductService) ListProducts(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*productDomain.Product], error) {
	return s.binding.Paginate(ctx, req)
}

// GetProduct usa cache-aside.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, productDomain.CacheKeyByID(id), cacheTTL, s.log,
		func(ctx context.Context) (*productDomain.Product, error) {
			return s.repo.GetByID(ctx, id)
		})
}

func (s *ProductService) CreateProduct(ctx context.Context, in productDomain.ProductInput) (*productDomain.Product, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	p := productDomain.NewProduct(in)
	evt := sharedDomain.NewOutboxEvent(productDomain.Kind, p.ID.String(), productDomain.ProductCreated, p)
	if err := s.repo.Create(ctx, p, evt); err != nil {
		s.log.Warn("Failed to create product", zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, productDomain.CacheKeyByID(p.ID), p, cacheTTL, s.log)
	return p, nil
}

// UpdateProduct aplica sólo los campos recibidos.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, in productDomain.ProductInput) (*productDomain.Product, error) {
	if err := utils.ValidatePresent(in); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(in)

	evt := sharedDomain.NewOutboxEvent(productDomain.Kind, p.ID.String(), productDomain.ProductUpdated, p)
	if err := s.repo.Update(ctx, p, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, productDomain.CacheKeyByID(p.ID), p, cacheTTL, s.log)
	return p, nil
}

// DeleteProduct borra y devuelve el producto eliminado.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(productDomain.Kind, id.String(), productDomain.ProductDeleted, p)
	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheDelete(ctx, s.cache, productDomain.CacheKeyByID(id), s.log)
	return p, nil
}
