package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

type TeamRepository interface {
	pagination.Handle[*Member, sharedDomain.Criteria]

	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	Create(ctx context.Context, m *Member, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, m *Member, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}
