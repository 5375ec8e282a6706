package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// BlogRepository: la lectura paginada admite el include "user".
type BlogRepository interface {
	pagination.Handle[*Blog, sharedDomain.Criteria]

	GetByID(ctx context.Context, id uuid.UUID, include ...string) (*Blog, error)
	Create(ctx context.Context, b *Blog, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, b *Blog, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}
