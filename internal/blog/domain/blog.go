package domain

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
	"github.com/davicafu/hexadmin/pkg/utils"
)

const Kind = "blog"

const (
	BlogCreated = "blog.created"
	BlogUpdated = "blog.updated"
	BlogDeleted = "blog.deleted"
)

const BlogTopic = "admin.blog"

// IncludeUser carga el autor en cada entrada.
const IncludeUser = "user"

var SearchFields = []string{"title", "description"}

var DefaultOrder = []sharedQuery.Sort{sharedQuery.Desc("updated_at")}

// Blog es una entrada del blog público. Image guarda sólo el nombre del fichero.
type Blog struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ProductID   *uuid.UUID `json:"product_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        *Author    `json:"user,omitempty"`
}

func (b *Blog) PartitionKey() string { return b.ID.String() }

// Author es la vista del usuario que acompaña a cada entrada.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
}

// BlogInput: product_id admite "all" o vacío para "sin producto".
type BlogInput struct {
	Title          *string   `json:"title" label:"Title" validate:"required,min=1,max=191"`
	Description    *string   `json:"description"`
	ProductID      *string   `json:"product_id"`
	Tags           *[]string `json:"tags"`
	Image          *string   `json:"image"`
	IsImageChanged bool      `json:"isImageChanged"`
}

// ProductRef interpreta product_id: nil si falta, es "all" o está vacío.
func (in BlogInput) ProductRef() (*uuid.UUID, error) {
	if in.ProductID == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*in.ProductID)
	if raw == "" || raw == "all" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, utils.FieldErrors{"product_id": "Product is not valid"}
	}
	return &id, nil
}

func NewBlog(userID uuid.UUID, in BlogInput) (*Blog, error) {
	now := time.Now().UTC()
	b := &Blog{ID: uuid.New(), UserID: userID, Tags: []string{}, CreatedAt: now}
	if err := b.Apply(in); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply no toca la imagen ni el autor.
func (b *Blog) Apply(in BlogInput) error {
	if in.ProductID != nil {
		ref, err := in.ProductRef()
		if err != nil {
			return err
		}
		b.ProductID = ref
	}
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		b.Description = in.Description
	}
	if in.Tags != nil {
		b.Tags = *in.Tags
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func CacheKeyByID(id uuid.UUID) string {
	return sharedCache.Key(Kind, id.String())
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	meta := sharedEvents.EventMetadata{Type: reflect.TypeOf(Blog{}), Topic: BlogTopic}
	return map[string]sharedEvents.EventMetadata{
		BlogCreated: meta,
		BlogUpdated: meta,
		BlogDeleted: meta,
	}
}
