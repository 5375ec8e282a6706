package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexadmin/internal/global/application"
	globalDomain "github.com/davicafu/hexadmin/internal/global/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/pkg/utils"
)

type GlobalHandler struct {
	service *application.GlobalService
}

func NewGlobalHandler(service *application.GlobalService) *GlobalHandler {
	return &GlobalHandler{service: service}
}

// GetConfig endpoint GET /global/config; responde null si aún no hay configuración.
func (h *GlobalHandler) GetConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, cfg)
}

// UpdateConfig endpoint POST /global/config/update
func (h *GlobalHandler) UpdateConfig(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := globalDomain.ParseConfigPatch(body)
	if err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), patch)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Configuration successfully updated", cfg)
}

// ListProvinces endpoint GET /global/province?q
func (h *GlobalHandler) ListProvinces(c *gin.Context) {
	req := sharedHttp.ListRequest(c, globalDomain.RegionSearchFields, globalDomain.RegionOrder)
	res, err := h.service.ListProvinces(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}

// ListCities endpoint GET /global/city?q&province_id
func (h *GlobalHandler) ListCities(c *gin.Context) {
	var extra []sharedDomain.Criteria
	if raw := c.Query("province_id"); raw != "" {
		provinceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.SendFailed(c, http.StatusBadRequest, "invalid province_id")
			return
		}
		extra = append(extra, sharedDomain.Eq("province_id", provinceID))
	}

	req := sharedHttp.ListRequest(c, globalDomain.RegionSearchFields, globalDomain.RegionOrder, extra...)
	res, err := h.service.ListCities(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}
