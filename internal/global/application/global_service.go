package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	globalDomain "github.com/davicafu/hexadmin/internal/global/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

const cacheTTL = 600

// GlobalService agrupa la configuración del sitio y el catálogo de regiones.
type GlobalService struct {
	config    globalDomain.ConfigRepository
	regions   globalDomain.RegionRepository
	provinces *pagination.Binding[*globalDomain.Province, sharedDomain.Criteria]
	cities    *pagination.Binding[*globalDomain.City, sharedDomain.Criteria]
	cache     sharedCache.Cache
	log       *zap.Logger
}

func NewGlobalService(
	config globalDomain.ConfigRepository,
	regions globalDomain.RegionRepository,
	provinces *pagination.Binding[*globalDomain.Province, sharedDomain.Criteria],
	cities *pagination.Binding[*globalDomain.City, sharedDomain.Criteria],
	cache sharedCache.Cache,
	log *zap.Logger,
) *GlobalService {
	return &GlobalService{
		config:    config,
		regions:   regions,
		provinces: provinces,
		cities:    cities,
		cache:     cache,
		log:       log,
	}
}

// ---------------- Configuración ----------------

// GetConfig devuelve nil (sin error) mientras nadie haya guardado la configuración.
func (s *GlobalService) GetConfig(ctx context.Context) (*globalDomain.SiteConfig, error) {
	cfg, err := sharedCache.GetOrLoad(ctx, s.cache, globalDomain.ConfigCacheKey(), cacheTTL, s.log,
		func(ctx context.Context) (*globalDomain.SiteConfig, error) {
			return s.config.Get(ctx)
		})
	if errors.Is(err, sharedDomain.ErrNotFound) {
		return nil, nil
	}
	return cfg, err
}

// UpdateConfig crea la fila si no existe y aplica sólo las claves recibidas.
func (s *GlobalService) UpdateConfig(ctx context.Context, patch globalDomain.ConfigPatch) (*globalDomain.SiteConfig, error) {
	cfg, err := s.config.Get(ctx)
	switch {
	case errors.Is(err, sharedDomain.ErrNotFound):
		cfg = globalDomain.NewSiteConfig()
	case err != nil:
		return nil, err
	}
	cfg.Apply(patch)

	evt := sharedDomain.NewOutboxEvent(globalDomain.ConfigKind, cfg.PartitionKey(), globalDomain.ConfigUpdated, cfg)
	if err := s.config.Save(ctx, cfg, evt); err != nil {
		s.log.Warn("Failed to save site config", zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, globalDomain.ConfigCacheKey(), cfg, cacheTTL, s.log)
	return cfg, nil
}

// ---------------- Regiones ----------------

func (s *GlobalService) ListProvinces(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*globalDomain.Province], error) {
	return s.provinces.Paginate(ctx, req)
}

// ListCities siempre incluye la provincia.
func (s *GlobalService) ListCities(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*globalDomain.City], error) {
	req.Include = append(req.Include, globalDomain.IncludeProvince)
	return s.cities.Paginate(ctx, req)
}

// SeedRegions carga DefaultRegions; se puede repetir sin duplicar.
func (s *GlobalService) SeedRegions(ctx context.Context) error {
	provinces, cities := globalDomain.DefaultRegions()
	if err := s.regions.Seed(ctx, provinces, cities); err != nil {
		return err
	}
	s.log.Info("Regions seeded", zap.Int("provinces", len(provinces)), zap.Int("cities", len(cities)))
	return nil
}
