package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// TagRepository: el nombre es único, un duplicado devuelve *sharedDomain.DuplicateError.
type TagRepository interface {
	pagination.Handle[*Tag, sharedDomain.Criteria]

	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	Create(ctx context.Context, t *Tag, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, t *Tag, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}
