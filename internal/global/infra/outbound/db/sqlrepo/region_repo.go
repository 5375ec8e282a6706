package sqlrepo

import (
	"context"

	globalDomain "github.com/davicafu/hexadmin/internal/global/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

type RegionRepo struct {
	provinces *sqlstore.Table[*globalDomain.Province]
	cities    *sqlstore.Table[*globalDomain.City]
}

var _ globalDomain.RegionRepository = (*RegionRepo)(nil)

func NewRegionRepo(db *sqlstore.DB) *RegionRepo {
	provinces := sqlstore.NewTable(db, sqlstore.Mapper[*globalDomain.Province]{
		Entity:       globalDomain.ProvinceKind,
		Table:        "provinces",
		Columns:      []string{"id", "name"},
		DefaultOrder: globalDomain.RegionOrder,
		Scan: func(row sqlstore.Scanner) (*globalDomain.Province, error) {
			var p globalDomain.Province
			return &p, row.Scan(&p.ID, &p.Name)
		},
		Values: func(p *globalDomain.Province) map[string]interface{} {
			return map[string]interface{}{"id": p.ID, "name": p.Name}
		},
		KeyOf: func(p *globalDomain.Province) interface{} { return p.ID },
	})

	cities := sqlstore.NewTable(db, sqlstore.Mapper[*globalDomain.City]{
		Entity:       globalDomain.CityKind,
		Table:        "cities",
		Columns:      []string{"id", "province_id", "name"},
		DefaultOrder: globalDomain.RegionOrder,
		Includes: map[string]sqlstore.Loader[*globalDomain.City]{
			globalDomain.IncludeProvince: sqlstore.BelongsTo(provinces,
				func(c *globalDomain.City) (int64, bool) { return c.ProvinceID, true },
				func(p *globalDomain.Province) int64 { return p.ID },
				func(c *globalDomain.City, p *globalDomain.Province) { c.Province = p },
			),
		},
		Scan: func(row sqlstore.Scanner) (*globalDomain.City, error) {
			var c globalDomain.City
			return &c, row.Scan(&c.ID, &c.ProvinceID, &c.Name)
		},
		Values: func(c *globalDomain.City) map[string]interface{} {
			return map[string]interface{}{"id": c.ID, "province_id": c.ProvinceID, "name": c.Name}
		},
		KeyOf: func(c *globalDomain.City) interface{} { return c.ID },
	})

	return &RegionRepo{provinces: provinces, cities: cities}
}

func (r *RegionRepo) Provinces() pagination.Handle[*globalDomain.Province, sharedDomain.Criteria] {
	return r.provinces
}

func (r *RegionRepo) Cities() pagination.Handle[*globalDomain.City, sharedDomain.Criteria] {
	return r.cities
}

// Seed escribe provincias y después ciudades; es idempotente.
func (r *RegionRepo) Seed(ctx context.Context, provinces []*globalDomain.Province, cities []*globalDomain.City) error {
	for _, p := range provinces {
		if err := r.provinces.Upsert(ctx, p, nil); err != nil {
			return err
		}
	}
	for _, c := range cities {
		if err := r.cities.Upsert(ctx, c, nil); err != nil {
			return err
		}
	}
	return nil
}
