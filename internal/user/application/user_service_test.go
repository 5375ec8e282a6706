package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
	"github.com/davicafu/hexadmin/internal/user/infra/outbound/db/sqlrepo"
	"github.com/davicafu/hexadmin/tests/mocks"
)

// Contra SQLite real: cubre las restricciones UNIQUE y la lectura paginada.
func newUserService(t *testing.T) *UserService {
	db := mocks.NewTestDB(t, sqlrepo.Schema)
	repo := sqlrepo.NewUserRepo(db)

	registry := pagination.NewRegistry[sharedDomain.Criteria]()
	binding, err := pagination.Register[*userDomain.User, sharedDomain.Criteria](registry, userDomain.Kind, repo)
	require.NoError(t, err)

	return NewUserService(repo, binding, mocks.FakeHasher{}, nil, zap.NewNop())
}

func TestCreateUser_Success(t *testing.T) {
	service := newUserService(t)

	user, err := service.CreateUser(context.Background(), registration("pepe", "pepe@example.com"))

	require.NoError(t, err)
	assert.Equal(t, "pepe@example.com", user.Email)
	assert.Equal(t, "hashed:secret", user.Password)

	stored, err := service.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.FullName)
}

func TestCreateUser_AlreadyExists(t *testing.T) {
	service := newUserService(t)
	_, err := service.CreateUser(context.Background(), registration("pepe", "pepe@example.com"))
	require.NoError(t, err)

	_, err = service.CreateUser(context.Background(), registration("juan", "pepe@example.com"))

	var dup *sharedDomain.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestGetUser_NotFound(t *testing.T) {
	service := newUserService(t)

	_, err := service.GetUser(context.Background(), uuid.New())

	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

func TestUpdateUser_PasswordRehashed(t *testing.T) {
	service := newUserService(t)
	ctx := context.Background()
	user, err := service.CreateUser(ctx, registration("pepe", "pepe@example.com"))
	require.NoError(t, err)

	updated, err := service.UpdateUser(ctx, user.ID, userDomain.UserInput{FirstName: s("Pepe"), Password: s("n3w")})

	require.NoError(t, err)
	assert.Equal(t, "Pepe Doe", updated.FullName)
	assert.Equal(t, "hashed:n3w", updated.Password)
	assert.Equal(t, "pepe", updated.Username)
}

func TestListUsers_Search(t *testing.T) {
	service := newUserService(t)
	ctx := context.Background()
	for _, name := range []string{"alice", "bob", "alfred"} {
		_, err := service.CreateUser(ctx, registration(name, name+"@example.com"))
		require.NoError(t, err)
	}

	res, err := service.ListUsers(ctx, pagination.Request[sharedDomain.Criteria]{
		Filter: sharedDomain.Search("al", userDomain.SearchFields...),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta.Total)
	for _, u := range res.Data {
		assert.Contains(t, u.Username, "al")
	}
}

func TestDeleteUser(t *testing.T) {
	service := newUserService(t)
	ctx := context.Background()
	user, err := service.CreateUser(ctx, registration("pepe", "pepe@example.com"))
	require.NoError(t, err)

	deleted, err := service.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = service.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}
