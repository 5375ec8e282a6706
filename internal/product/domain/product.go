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

// Kind es el nombre de la entidad en el registro de paginación.
const Kind = "product"

const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

const ProductTopic = "admin.product"

// SearchFields son los campos donde busca "q".
var SearchFields = []string{"name", "description"}

var DefaultOrder = []sharedQuery.Sort{sharedQuery.Asc("name")}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) PartitionKey() string {
	return p.ID.String()
}

// ProductInput es lo que acepta create; en update todos los campos son opcionales.
type ProductInput struct {
	Name        *string `json:"name" label:"Name" validate:"required,min=1,max=191"`
	Description *string `json:"description"`
}

// NewProduct crea un producto a partir de una entrada ya validada.
func NewProduct(in ProductInput) *Product {
	now := time.Now().UTC()
	p := &Product{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	p.Apply(in)
	return p
}

// Apply aplica los campos presentes en la entrada.
func (p *Product) Apply(in ProductInput) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	p.UpdatedAt = time.Now().UTC()
}

func CacheKeyByID(id uuid.UUID) string {
	return sharedCache.Key(Kind, id.String())
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	meta := sharedEvents.EventMetadata{Type: reflect.TypeOf(Product{}), Topic: ProductTopic}
	return map[string]sharedEvents.EventMetadata{
		ProductCreated: meta,
		ProductUpdated: meta,
		ProductDeleted: meta,
	}
}

var _ sharedBus.Keyer = (*Product)(nil)
