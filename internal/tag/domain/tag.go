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

const Kind = "tag"

const (
	TagCreated = "tag.created"
	TagUpdated = "tag.updated"
	TagDeleted = "tag.deleted"
)

const TagTopic = "admin.tag"

var SearchFields = []string{"name"}

var DefaultOrder = []sharedQuery.Sort{sharedQuery.Asc("name")}

type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) PartitionKey() string { return t.ID.String() }

type TagInput struct {
	Name *string `json:"name" label:"Name" validate:"required,min=1,max=100"`
}

func NewTag(in TagInput) *Tag {
	now := time.Now().UTC()
	t := &Tag{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	t.Apply(in)
	return t
}

func (t *Tag) Apply(in TagInput) {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	t.UpdatedAt = time.Now().UTC()
}

func CacheKeyByID(id uuid.UUID) string {
	return sharedCache.Key(Kind, id.String())
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	meta := sharedEvents.EventMetadata{Type: reflect.TypeOf(Tag{}), Topic: TagTopic}
	return map[string]sharedEvents.EventMetadata{
		TagCreated: meta,
		TagUpdated: meta,
		TagDeleted: meta,
	}
}
