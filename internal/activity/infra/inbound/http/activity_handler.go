package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexadmin/internal/activity/application"
	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/pkg/utils"
)

type ActivityHandler struct {
	service *application.ActivityService
}

func NewActivityHandler(service *application.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// ListActivity endpoint GET /activity?page&limit&q&type&aggregate
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	var extra []sharedDomain.Criteria
	if t := c.Query("type"); t != "" {
		extra = append(extra, sharedDomain.Eq(activityDomain.FieldEventType, t))
	}
	if agg := c.Query("aggregate"); agg != "" {
		extra = append(extra, sharedDomain.Eq(activityDomain.FieldAggregateType, agg))
	}

	req := sharedHttp.ListRequest(c, activityDomain.SearchFields, activityDomain.DefaultOrder, extra...)
	res, err := h.service.ListActivity(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}
