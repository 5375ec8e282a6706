package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/user/application"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

// AuthHandler encapsula login, registro, refresco y la cuenta actual.
type AuthHandler struct {
	auth  *application.AuthService
	users *application.UserService
}

func NewAuthHandler(auth *application.AuthService, users *application.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// ---------------- Handlers ----------------

// Login endpoint POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var cred userDomain.Credentials
	if err := c.ShouldBindJSON(&cred); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	session, err := h.auth.Login(c.Request.Context(), cred)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, session)
}

// Register endpoint POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in userDomain.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.auth.Register(c.Request.Context(), in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Register success", u)
}

// Refresh endpoint POST /auth/token/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	p, ok := sharedHttp.CurrentPrincipal(c)
	if !ok {
		utils.SendUnauthorized(c, http.StatusForbidden)
		return
	}
	session, err := h.auth.Refresh(c.Request.Context(), p.UserID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, session)
}

// Me endpoint GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := sharedHttp.CurrentPrincipal(c)
	if !ok {
		utils.SendUnauthorized(c, http.StatusUnauthorized)
		return
	}
	u, err := h.users.GetUser(c.Request.Context(), p.UserID)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, u)
}
