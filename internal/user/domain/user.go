package domain

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

const Kind = "user"

const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

const UserTopic = "admin.user"

// SearchFields son los campos donde busca "q" en el listado de usuarios.
var SearchFields = []string{"username", "email", "first_name", "last_name"}

var DefaultOrder = []sharedQuery.Sort{sharedQuery.Desc("created_at")}

// User representa una cuenta del panel.
// Password nunca se serializa: ni en respuestas, ni en caché, ni en eventos.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone"`
	RoleID    int       `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) PartitionKey() string {
	return u.ID.String()
}

// FullNameOf devuelve "nombre apellido" o, si ambos están vacíos, el username.
func FullNameOf(firstName, lastName, username string) string {
	if name := strings.TrimSpace(firstName + " " + lastName); name != "" {
		return name
	}
	return username
}

// UserInput es el cuerpo de register y de create/update de usuarios.
type UserInput struct {
	Username  *string `json:"username" label:"Username" validate:"required,min=1,max=100"`
	Email     *string `json:"email" label:"Email" validate:"required,min=1,max=100,email"`
	FirstName *string `json:"first_name" label:"First name" validate:"required,min=1,max=100"`
	LastName  *string `json:"last_name" label:"Last name" validate:"required,min=1,max=100"`
	Password  *string `json:"password" label:"Password" validate:"required,min=1,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	RoleID    *int    `json:"role_id"`
}

// NewUser crea el usuario con la contraseña ya cifrada.
func NewUser(in UserInput, passwordHash string) *User {
	now := time.Now().UTC()
	u := &User{ID: uuid.New(), CreatedAt: now}
	u.Apply(in)
	u.Password = passwordHash
	return u
}

// Apply copia los campos presentes salvo la contraseña, que llega cifrada aparte.
func (u *User) Apply(in UserInput) {
	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Phone != nil {
		u.Phone = in.Phone
	}
	if in.RoleID != nil {
		u.RoleID = *in.RoleID
	}
	u.FullName = FullNameOf(u.FirstName, u.LastName, u.Username)
	u.UpdatedAt = time.Now().UTC()
}

func CacheKeyByID(id uuid.UUID) string {
	return sharedCache.Key(Kind, id.String())
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	meta := sharedEvents.EventMetadata{Type: reflect.TypeOf(User{}), Topic: UserTopic}
	return map[string]sharedEvents.EventMetadata{
		UserCreated: meta,
		UserUpdated: meta,
		UserDeleted: meta,
	}
}

// Verificación estática para asegurar que User implementa la interfaz
var _ sharedBus.Keyer = (*User)(nil)
