package http

import (
	"context"

	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/user/application"
)

// TokenAuthenticator adapta AuthService al middleware compartido.
type TokenAuthenticator struct {
	service *application.AuthService
}

var _ sharedHttp.Authenticator = (*TokenAuthenticator)(nil)

func NewTokenAuthenticator(service *application.AuthService) *TokenAuthenticator {
	return &TokenAuthenticator{service: service}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, token string) (*sharedHttp.Principal, error) {
	u, err := a.service.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return &sharedHttp.Principal{UserID: u.ID, Username: u.Username, RoleID: u.RoleID}, nil
}
