package domain

import (
	"context"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// ActivityRepository: lectura paginada más el alta de cada evento recibido.
type ActivityRepository interface {
	pagination.Handle[*Activity, sharedDomain.Criteria]

	// Debe devolver sharedDomain.ErrAlreadyExists si el evento ya se guardó.
	Record(ctx context.Context, a *Activity) error
}
