// Package http reúne lo común a los adaptadores gin: lectura de listados,
// middleware de log y autenticación.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
	"github.com/davicafu/hexadmin/pkg/utils"
)

// ListRequest lee page, limit, q y sort de la query string.
// q se busca (sin distinguir mayúsculas) en searchFields; extra se combina con AND.
func ListRequest(c *gin.Context, searchFields []string, defaultOrder []sharedQuery.Sort, extra ...sharedDomain.Criteria) pagination.Request[sharedDomain.Criteria] {
	filters := append([]sharedDomain.Criteria{sharedDomain.Search(c.Query("q"), searchFields...)}, extra...)
	req := pagination.ParseRequest[sharedDomain.Criteria](c.Query("page"), c.Query("limit"), sharedDomain.And(filters...))
	req.OrderBy = sharedQuery.ParseSort(c.Query("sort"), defaultOrder...)
	return req
}

// ParseID lee el parámetro :id como UUID; si no es válido responde 400.
func ParseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendFailed(c, 400, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// ImageURL convierte el nombre guardado en <server>/static/images/<kind>/<name>.
func ImageURL(c *gin.Context, kind string, name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	url := utils.ServerURL(c) + "/static/images/" + kind + "/" + *name
	return &url
}
