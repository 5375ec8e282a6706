package security

import (
	"golang.org/x/crypto/bcrypt"

	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
)

// BcryptCost coincide con el de las cuentas ya existentes.
const BcryptCost = 10

type BcryptHasher struct {
	cost int
}

var _ userDomain.PasswordHasher = (*BcryptHasher)(nil)

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: BcryptCost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
