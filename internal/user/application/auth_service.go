package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

// AuthService cubre login, registro, refresco de tokens y verificación de sesión.
type AuthService struct {
	repo   userDomain.UserRepository
	hasher userDomain.PasswordHasher
	tokens userDomain.TokenIssuer
	log    *zap.Logger
}

func NewAuthService(repo userDomain.UserRepository, hasher userDomain.PasswordHasher, tokens userDomain.TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Login acepta username o email en el campo username.
func (s *AuthService) Login(ctx context.Context, cred userDomain.Credentials) (*userDomain.Session, error) {
	if cred.Username == "" {
		return nil, sharedDomain.Reject(userDomain.MsgUsernameRequired)
	}
	if cred.Password == "" {
		return nil, sharedDomain.Reject(userDomain.MsgPasswordRequired)
	}

	u, err := s.repo.FindByLogin(ctx, cred.Username)
	if errors.Is(err, sharedDomain.ErrNotFound) {
		return nil, &sharedDomain.RequestError{Code: userDomain.CodeNoAccount, Message: userDomain.MsgNoAccount}
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Compare(u.Password, cred.Password) {
		return nil, sharedDomain.Reject(userDomain.MsgPasswordMismatch)
	}

	s.log.Info("User logged in", zap.String("user_id", u.ID.String()))
	return s.session(u)
}

// Register crea la cuenta tras comprobar que username y email están libres.
func (s *AuthService) Register(ctx context.Context, in userDomain.UserInput) (*userDomain.User, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsBy(ctx, "username", *in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, sharedDomain.Reject(userDomain.MsgUsernameTaken)
	}
	if taken, err = s.repo.ExistsBy(ctx, "email", *in.Email); err != nil {
		return nil, err
	}
	if taken {
		return nil, sharedDomain.Reject(userDomain.MsgEmailTaken)
	}

	hash, err := s.hasher.Hash(*in.Password)
	if err != nil {
		return nil, err
	}
	u := userDomain.NewUser(in, hash)

	evt := sharedDomain.NewOutboxEvent(userDomain.Kind, u.ID.String(), userDomain.UserCreated, u)
	if err := s.repo.Create(ctx, u, evt); err != nil {
		return nil, err
	}
	return u, nil
}

// Refresh vuelve a emitir ambos tokens con los datos actuales del usuario.
// Si el usuario ya no existe la respuesta es 403.
func (s *AuthService) Refresh(ctx context.Context, userID uuid.UUID) (*userDomain.Session, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, sharedDomain.ErrNotFound) {
		return nil, sharedDomain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

// Verify valida un token de acceso y devuelve el usuario que lleva.
func (s *AuthService) Verify(ctx context.Context, token string) (*userDomain.User, error) {
	return s.tokens.Verify(token)
}

// SeedAdmin crea el superadministrador si todavía no existe ese email.
func (s *AuthService) SeedAdmin(ctx context.Context, in userDomain.UserInput) error {
	exists, err := s.repo.ExistsBy(ctx, "email", *in.Email)
	if err != nil || exists {
		return err
	}
	u, err := s.Register(ctx, in)
	if err != nil {
		return err
	}
	s.log.Info("Admin account seeded", zap.String("username", u.Username))
	return nil
}

func (s *AuthService) session(u *userDomain.User) (*userDomain.Session, error) {
	pair, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &userDomain.Session{TokenPair: pair, User: u}, nil
}
