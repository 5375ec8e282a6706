package http

import (
	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
	"github.com/davicafu/hexadmin/pkg/utils"
)

// EntityHandler expone el registro de paginación por nombre de entidad.
// No hay búsqueda libre: los campos de "q" dependen de cada entidad.
type EntityHandler struct {
	registry *pagination.Registry[sharedDomain.Criteria]
}

func NewEntityHandler(registry *pagination.Registry[sharedDomain.Criteria]) *EntityHandler {
	return &EntityHandler{registry: registry}
}

// ListKinds endpoint GET /entities
func (h *EntityHandler) ListKinds(c *gin.Context) {
	utils.SendData(c, gin.H{"data": h.registry.Kinds()})
}

// Paginate endpoint GET /entities/:kind?page&limit&sort
func (h *EntityHandler) Paginate(c *gin.Context) {
	req := pagination.ParseRequest[sharedDomain.Criteria](c.Query("page"), c.Query("limit"), sharedDomain.And())
	req.OrderBy = sharedQuery.ParseSort(c.Query("sort"))

	res, err := h.registry.Paginate(c.Request.Context(), c.Param("kind"), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}

func RegisterEntityRoutes(r gin.IRouter, handler *EntityHandler, auth gin.HandlerFunc) {
	entities := r.Group("/entities", auth)
	{
		entities.GET("", handler.ListKinds)
		entities.GET("/:kind", handler.Paginate)
	}
}
