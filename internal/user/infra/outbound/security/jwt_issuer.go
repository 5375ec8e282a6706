// Package security agrupa los adaptadores de cifrado de contraseñas y tokens.
package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
)

// claims lleva el usuario completo (sin contraseña) como hacían los tokens originales.
type claims struct {
	User *userDomain.User `json:"user"`
	jwt.RegisteredClaims
}

// JWTIssuer firma tokens HS256 con un secreto compartido.
type JWTIssuer struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

var _ userDomain.TokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, ttl, refreshTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, refreshTTL: refreshTTL, now: time.Now}
}

func (i *JWTIssuer) Issue(u *userDomain.User) (userDomain.TokenPair, error) {
	now := i.now()
	exp := now.Add(i.ttl)

	token, err := i.sign(u, now, exp)
	if err != nil {
		return userDomain.TokenPair{}, err
	}
	refresh, err := i.sign(u, now, now.Add(i.refreshTTL))
	if err != nil {
		return userDomain.TokenPair{}, err
	}
	return userDomain.TokenPair{Token: token, RefreshToken: refresh, Exp: exp.Unix()}, nil
}

func (i *JWTIssuer) sign(u *userDomain.User, issuedAt, exp time.Time) (string, error) {
	c := claims{
		User: u,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify comprueba firma y expiración; cualquier fallo es ErrUnauthorized.
func (i *JWTIssuer) Verify(token string) (*userDomain.User, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharedDomain.ErrUnauthorized, err)
	}
	if !parsed.Valid || c.User == nil {
		return nil, sharedDomain.ErrUnauthorized
	}
	return c.User, nil
}
