package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
type UserRepository interface {
	pagination.Handle[*User, sharedDomain.Criteria]

	// Debe devolver sharedDomain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByLogin busca por username o por email.
	FindByLogin(ctx context.Context, login string) (*User, error)

	// ExistsBy indica si algún usuario tiene ese valor en la columna (username, email).
	ExistsBy(ctx context.Context, field, value string) (bool, error)

	// Username y email son únicos: un duplicado devuelve *sharedDomain.DuplicateError.
	Create(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error
	Update(ctx context.Context, u *User, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error
}
