package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexadmin/internal/product/application"
	productDomain "github.com/davicafu/hexadmin/internal/product/domain"
	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/pkg/utils"
)

// ProductHandler encapsula los endpoints HTTP de productos.
type ProductHandler struct {
	service *application.ProductService
}

func NewProductHandler(service *application.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListProducts endpoint GET /product?page&limit&q
func (h *ProductHandler) ListProducts(c *gin.Context) {
	req := sharedHttp.ListRequest(c, productDomain.SearchFields, productDomain.DefaultOrder)
	res, err := h.service.ListProducts(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, res)
}

// GetProduct endpoint GET /product/:id/detail
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	p, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, p)
}

// CreateProduct endpoint POST /product/create
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in productDomain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, 400, err.Error())
		return
	}
	p, err := h.service.CreateProduct(c.Request.Context(), in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Product successfully created", p)
}

// UpdateProduct endpoint PUT /product/:id/update
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	var in productDomain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, 400, err.Error())
		return
	}
	p, err := h.service.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Product successfully changed", p)
}

// DeleteProduct endpoint DELETE /product/:id/delete
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	p, err := h.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Product successfully removed", p)
}
