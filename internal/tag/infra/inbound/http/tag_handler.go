package http

import (
	"github.com/gin-gonic/gin"

	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/tag/application"
	tagDomain "github.com/davicafu/hexadmin/internal/tag/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

type TagHandler struct {
	service *application.TagService
}

func NewTagHandler(service *application.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	req := sharedHttp.ListRequest(c, tagDomain.SearchFields, tagDomain.DefaultOrder)
	res, err := h.service.ListTags(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	t, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, t)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var in tagDomain.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, 400, err.Error())
		return
	}
	t, err := h.service.CreateTag(c.Request.Context(), in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Tag successfully created", t)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	var in tagDomain.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, 400, err.Error())
		return
	}
	t, err := h.service.UpdateTag(c.Request.Context(), id, in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Tag successfully changed", t)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	t, err := h.service.DeleteTag(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Tag successfully removed", t)
}
