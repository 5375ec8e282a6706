package sqlrepo

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
)

var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY,
        username TEXT NOT NULL UNIQUE,
        email TEXT NOT NULL UNIQUE,
        password TEXT NOT NULL,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        phone TEXT NULL,
        role_id INTEGER NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    )`},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY,
        username VARCHAR(100) NOT NULL UNIQUE,
        email VARCHAR(100) NOT NULL UNIQUE,
        password VARCHAR(100) NOT NULL,
        first_name VARCHAR(100) NOT NULL,
        last_name VARCHAR(100) NOT NULL,
        phone VARCHAR(30) NULL,
        role_id INTEGER NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`},
}

// UserRepo implementa UserRepository sobre sqlstore.Table.
type UserRepo struct {
	*sqlstore.Table[*userDomain.User]
}

var _ userDomain.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *sqlstore.DB) *UserRepo {
	return &UserRepo{Table: NewUserTable(db)}
}

// NewUserTable se expone para que otros contextos (blog) carguen el autor.
func NewUserTable(db *sqlstore.DB) *sqlstore.Table[*userDomain.User] {
	return sqlstore.NewTable(db, sqlstore.Mapper[*userDomain.User]{
		Entity: userDomain.Kind,
		Table:  "users",
		Columns: []string{
			"id", "username", "email", "password", "first_name", "last_name",
			"phone", "role_id", "created_at", "updated_at",
		},
		DefaultOrder: userDomain.DefaultOrder,
		Scan: func(row sqlstore.Scanner) (*userDomain.User, error) {
			var u userDomain.User
			if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName, &u.LastName,
				&u.Phone, &u.RoleID, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return nil, err
			}
			u.FullName = userDomain.FullNameOf(u.FirstName, u.LastName, u.Username)
			return &u, nil
		},
		Values: func(u *userDomain.User) map[string]interface{} {
			return map[string]interface{}{
				"id":         u.ID,
				"username":   u.Username,
				"email":      u.Email,
				"password":   u.Password,
				"first_name": u.FirstName,
				"last_name":  u.LastName,
				"phone":      u.Phone,
				"role_id":    u.RoleID,
				"created_at": u.CreatedAt,
				"updated_at": u.UpdatedAt,
			}
		},
		KeyOf: func(u *userDomain.User) interface{} { return u.ID },
	})
}

func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return r.Get(ctx, id)
}

func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*userDomain.User, error) {
	return r.FindOne(ctx, sharedDomain.Or(
		sharedDomain.Eq("username", login),
		sharedDomain.Eq("email", login),
	))
}

func (r *UserRepo) ExistsBy(ctx context.Context, field, value string) (bool, error) {
	n, err := r.Count(ctx, sharedDomain.Eq(field, value))
	return n > 0, err
}

func (r *UserRepo) Create(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	return r.Insert(ctx, u, &evt)
}

func (r *UserRepo) Update(ctx context.Context, u *userDomain.User, evt sharedDomain.OutboxEvent) error {
	return r.Table.Update(ctx, u, &evt)
}

func (r *UserRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	return r.Delete(ctx, id, &evt)
}
