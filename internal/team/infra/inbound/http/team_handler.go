package http

import (
	"github.com/gin-gonic/gin"

	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/internal/team/application"
	teamDomain "github.com/davicafu/hexadmin/internal/team/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

type TeamHandler struct {
	service *application.TeamService
}

func NewTeamHandler(service *application.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// present devuelve una copia con el avatar como URL pública.
func present(c *gin.Context, m *teamDomain.Member) *teamDomain.Member {
	out := *m
	out.Avatar = sharedHttp.ImageURL(c, teamDomain.Kind, m.Avatar)
	return &out
}

// ListMembers endpoint GET /team?page&limit&q
func (h *TeamHandler) ListMembers(c *gin.Context) {
	req := sharedHttp.ListRequest(c, teamDomain.SearchFields, teamDomain.DefaultOrder)
	res, err := h.service.ListMembers(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, pagination.Map(res, func(m *teamDomain.Member) *teamDomain.Member { return present(c, m) }))
}

func (h *TeamHandler) GetMember(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	m, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, present(c, m))
}

func (h *TeamHandler) CreateMember(c *gin.Context) {
	var in teamDomain.MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, 400, err.Error())
		return
	}
	m, err := h.service.CreateMember(c.Request.Context(), in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Team successfully created", present(c, m))
}

func (h *TeamHandler) UpdateMember(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	var in teamDomain.MemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, 400, err.Error())
		return
	}
	m, err := h.service.UpdateMember(c.Request.Context(), id, in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Team successfully changed", present(c, m))
}

func (h *TeamHandler) DeleteMember(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	m, err := h.service.DeleteMember(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Team successfully removed", present(c, m))
}
