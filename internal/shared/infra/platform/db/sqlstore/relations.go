package sqlstore

import (
	"context"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// BelongsTo arma un Loader para relaciones N:1 (blog -> user, city -> province):
// una sola consulta IN sobre la tabla relacionada por cada página.
func BelongsTo[T any, R any, K comparable](
	related *Table[R],
	foreignKey func(item T) (K, bool),
	key func(rel R) K,
	attach func(item T, rel R),
) Loader[T] {
	return func(ctx context.Context, items []T) error {
		seen := make(map[K]bool)
		var ids []interface{}
		for _, item := range items {
			if k, ok := foreignKey(item); ok && !seen[k] {
				seen[k] = true
				ids = append(ids, k)
			}
		}
		if len(ids) == 0 {
			return nil
		}

		rels, err := related.FindMany(ctx, pagination.FindArgs[sharedDomain.Criteria]{
			Filter: sharedDomain.In(related.m.Key, ids...),
		})
		if err != nil {
			return err
		}

		byKey := make(map[K]R, len(rels))
		for _, rel := range rels {
			byKey[key(rel)] = rel
		}
		for _, item := range items {
			if k, ok := foreignKey(item); ok {
				if rel, found := byKey[k]; found {
					attach(item, rel)
				}
			}
		}
		return nil
	}
}
