package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/user/application"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

// UserHandler encapsula los endpoints HTTP relacionados con User
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler crea un nuevo UserHandler
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ---------------- Handlers ----------------

// ListUsers endpoint GET /users?page&limit&q&sort
func (h *UserHandler) ListUsers(c *gin.Context) {
	req := sharedHttp.ListRequest(c, userDomain.SearchFields, userDomain.DefaultOrder)
	res, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}

// GetUser endpoint GET /users/:id/detail
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, u)
}

// CreateUser endpoint POST /users/create
func (h *UserHandler) CreateUser(c *gin.Context) {
	var in userDomain.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.service.CreateUser(c.Request.Context(), in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "User successfully created", u)
}

// UpdateUser endpoint PUT /users/:id/update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	var in userDomain.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.service.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "User successfully changed", u)
}

// DeleteUser endpoint DELETE /users/:id/delete
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	u, err := h.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "User successfully removed", u)
}
