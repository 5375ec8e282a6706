package domain

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

const Kind = "team"

const (
	MemberCreated = "team.created"
	MemberUpdated = "team.updated"
	MemberDeleted = "team.deleted"
)

const TeamTopic = "admin.team"

var SearchFields = []string{"full_name"}

var DefaultOrder = []sharedQuery.Sort{sharedQuery.Asc("full_name")}

// Member es una persona del equipo que aparece en la web pública.
// Avatar guarda sólo el nombre del fichero; la URL se arma al responder.
type Member struct {
	ID        uuid.UUID              `json:"id"`
	FullName  string                 `json:"full_name"`
	Title     string                 `json:"title"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone"`
	Gender    *int                   `json:"gender"`
	Category  *string                `json:"category"`
	Avatar    *string                `json:"avatar"`
	Social    map[string]interface{} `json:"social"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func (m *Member) PartitionKey() string { return m.ID.String() }

// MemberInput es el cuerpo de create/update.
// Image es una data URL base64; en update sólo se mira si IsImageChanged.
type MemberInput struct {
	FullName       *string                `json:"full_name" label:"Name" validate:"required,min=1,max=191"`
	Title          *string                `json:"title" label:"Title" validate:"required,min=1,max=191"`
	Email          *string                `json:"email" label:"Email" validate:"required,min=1,max=100,email"`
	Phone          *string                `json:"phone" label:"Phone" validate:"required,min=1,max=30"`
	Gender         *int                   `json:"gender" label:"Gender" validate:"omitempty,oneof=0 1 2"`
	Category       *string                `json:"category" validate:"omitempty,max=100"`
	Social         map[string]interface{} `json:"social"`
	Image          *string                `json:"image"`
	IsImageChanged bool                   `json:"isImageChanged"`
}

func NewMember(in MemberInput) *Member {
	now := time.Now().UTC()
	m := &Member{ID: uuid.New(), CreatedAt: now}
	m.Apply(in)
	return m
}

// Apply no toca Avatar: la imagen la gestiona el servicio.
func (m *Member) Apply(in MemberInput) {
	if in.FullName != nil {
		m.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Email != nil {
		m.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		m.Phone = *in.Phone
	}
	if in.Gender != nil {
		m.Gender = in.Gender
	}
	if in.Category != nil {
		m.Category = in.Category
	}
	if in.Social != nil {
		m.Social = in.Social
	}
	m.UpdatedAt = time.Now().UTC()
}

func CacheKeyByID(id uuid.UUID) string {
	return sharedCache.Key(Kind, id.String())
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	meta := sharedEvents.EventMetadata{Type: reflect.TypeOf(Member{}), Topic: TeamTopic}
	return map[string]sharedEvents.EventMetadata{
		MemberCreated: meta,
		MemberUpdated: meta,
		MemberDeleted: meta,
	}
}
