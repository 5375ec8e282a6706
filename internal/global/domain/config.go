package domain

import (
	"encoding/json"
	"reflect"
	"time"

	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
)

const ConfigKind = "config"

const ConfigUpdated = "config.updated"

const GlobalTopic = "admin.global"

// SiteConfigID es la única fila de configuración.
const SiteConfigID = 1

// SiteConfig son los textos y datos de contacto de la web pública.
type SiteConfig struct {
	ID               int       `json:"id"`
	Phone            *string   `json:"phone"`
	Email            *string   `json:"email"`
	Address          *string   `json:"address"`
	HomeTitle        *string   `json:"home_title"`
	HomeDescription  *string   `json:"home_description"`
	AboutTitle       *string   `json:"about_title"`
	AboutDescription *string   `json:"about_description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *SiteConfig) PartitionKey() string { return ConfigKind }

// ConfigPatch son las claves recibidas; un valor nil deja el campo a null.
type ConfigPatch map[string]*string

// ParseConfigPatch se queda sólo con las claves editables del cuerpo.
func ParseConfigPatch(body map[string]json.RawMessage) (ConfigPatch, error) {
	patch := ConfigPatch{}
	for key, raw := range body {
		if _, ok := configSetters[key]; !ok {
			continue
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		patch[key] = v
	}
	return patch, nil
}

var configSetters = map[string]func(c *SiteConfig, v *string){
	"phone":             func(c *SiteConfig, v *string) { c.Phone = v },
	"email":             func(c *SiteConfig, v *string) { c.Email = v },
	"address":           func(c *SiteConfig, v *string) { c.Address = v },
	"home_title":        func(c *SiteConfig, v *string) { c.HomeTitle = v },
	"home_description":  func(c *SiteConfig, v *string) { c.HomeDescription = v },
	"about_title":       func(c *SiteConfig, v *string) { c.AboutTitle = v },
	"about_description": func(c *SiteConfig, v *string) { c.AboutDescription = v },
}

// NewSiteConfig crea la fila vacía.
func NewSiteConfig() *SiteConfig {
	now := time.Now().UTC()
	return &SiteConfig{ID: SiteConfigID, CreatedAt: now, UpdatedAt: now}
}

// Apply copia sólo las claves presentes en el patch.
func (c *SiteConfig) Apply(p ConfigPatch) {
	for key, v := range p {
		if set, ok := configSetters[key]; ok {
			set(c, v)
		}
	}
	c.UpdatedAt = time.Now().UTC()
}

func ConfigCacheKey() string {
	return sharedCache.Key(ConfigKind, "site")
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		ConfigUpdated: {Type: reflect.TypeOf(SiteConfig{}), Topic: GlobalTopic},
	}
}

var _ sharedBus.Keyer = (*SiteConfig)(nil)
