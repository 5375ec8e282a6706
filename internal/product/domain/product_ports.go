package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// ProductRepository es la persistencia de productos. La lectura paginada
// viene de pagination.Handle; las escrituras guardan el evento en el outbox.
type ProductRepository interface {
	pagination.Handle[*Product, sharedDomain.Criteria]

	// Debe devolver sharedDomain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Debe devolver un *sharedDomain.DuplicateError si el nombre ya existe.
	Create(ctx context.Context, p *Product, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, p *Product, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}
