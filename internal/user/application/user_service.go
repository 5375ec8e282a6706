package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

const cacheTTL = 60

// UserService define los casos de uso de administración de usuarios.
type UserService struct {
	repo    userDomain.UserRepository
	binding *pagination.Binding[*userDomain.User, sharedDomain.Criteria]
	hasher  userDomain.PasswordHasher
	cache   sharedCache.Cache
	log     *zap.Logger
}

// NewUserService constructor
func NewUserService(
	repo userDomain.UserRepository,
	binding *pagination.Binding[*userDomain.User, sharedDomain.Criteria],
	hasher userDomain.PasswordHasher,
	cache sharedCache.Cache,
	log *zap.Logger,
) *UserService {
	return &UserService{repo: repo, binding: binding, hasher: hasher, cache: cache, log: log}
}

func (s *UserService) ListUsers(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*userDomain.User], error) {
	return s.binding.Paginate(ctx, req)
}

// GetUser usa cache-aside; lo cacheado no incluye la contraseña.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, userDomain.CacheKeyByID(id), cacheTTL, s.log,
		func(ctx context.Context) (*userDomain.User, error) {
			return s.repo.GetByID(ctx, id)
		})
}

func (s *UserService) CreateUser(ctx context.Context, in userDomain.UserInput) (*userDomain.User, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(*in.Password)
	if err != nil {
		return nil, err
	}
	u := userDomain.NewUser(in, hash)

	evt := sharedDomain.NewOutboxEvent(userDomain.Kind, u.ID.String(), userDomain.UserCreated, u)
	if err := s.repo.Create(ctx, u, evt); err != nil {
		s.log.Warn("Failed to create user", zap.String("username", u.Username), zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, userDomain.CacheKeyByID(u.ID), u, cacheTTL, s.log)
	return u, nil
}

// UpdateUser aplica los campos recibidos; una contraseña nueva se vuelve a cifrar.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, in userDomain.UserInput) (*userDomain.User, error) {
	if err := utils.ValidatePresent(in); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Apply(in)
	if in.Password != nil {
		if u.Password, err = s.hasher.Hash(*in.Password); err != nil {
			return nil, err
		}
	}

	evt := sharedDomain.NewOutboxEvent(userDomain.Kind, u.ID.String(), userDomain.UserUpdated, u)
	if err := s.repo.Update(ctx, u, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, userDomain.CacheKeyByID(u.ID), u, cacheTTL, s.log)
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(userDomain.Kind, id.String(), userDomain.UserDeleted, u)
	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheDelete(ctx, s.cache, userDomain.CacheKeyByID(id), s.log)
	return u, nil
}
