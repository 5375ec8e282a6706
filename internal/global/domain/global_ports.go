package domain

import (
	"context"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

type ConfigRepository interface {
	// Get devuelve sharedDomain.ErrNotFound mientras no se haya guardado nada.
	Get(ctx context.Context) (*SiteConfig, error)
	Save(ctx context.Context, c *SiteConfig, evt sharedDomain.OutboxEvent) error
}

// RegionRepository: provincias y ciudades son de sólo lectura salvo la siembra.
type RegionRepository interface {
	Provinces() pagination.Handle[*Province, sharedDomain.Criteria]
	Cities() pagination.Handle[*City, sharedDomain.Criteria]
	Seed(ctx context.Context, provinces []*Province, cities []*City) error
}
