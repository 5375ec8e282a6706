package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/hexadmin/internal/blog/application"
	blogDomain "github.com/davicafu/hexadmin/internal/blog/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/pkg/utils"
)

type BlogHandler struct {
	service *application.BlogService
}

func NewBlogHandler(service *application.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// present devuelve una copia con la imagen como URL pública.
func present(c *gin.Context, b *blogDomain.Blog) *blogDomain.Blog {
	out := *b
	out.Image = sharedHttp.ImageURL(c, blogDomain.Kind, b.Image)
	return &out
}

// ListBlogs endpoint GET /blog?page&limit&q&user_id
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	var extra []sharedDomain.Criteria
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			utils.SendFailed(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		extra = append(extra, sharedDomain.Eq("user_id", userID))
	}

	req := sharedHttp.ListRequest(c, blogDomain.SearchFields, blogDomain.DefaultOrder, extra...)
	res, err := h.service.ListBlogs(c.Request.Context(), req)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, pagination.Map(res, func(b *blogDomain.Blog) *blogDomain.Blog { return present(c, b) }))
}

// GetBlog endpoint GET /blog/:id/detail
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBlog(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendData(c, present(c, b))
}

// CreateBlog endpoint POST /blog/create
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	p, ok := sharedHttp.CurrentPrincipal(c)
	if !ok {
		utils.SendUnauthorized(c, http.StatusUnauthorized)
		return
	}
	var in blogDomain.BlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.service.CreateBlog(c.Request.Context(), p.UserID, in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Blog successfully created", present(c, b))
}

// UpdateBlog endpoint PUT /blog/:id/update
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	var in blogDomain.BlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.service.UpdateBlog(c.Request.Context(), id, in)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Blog successfully changed", present(c, b))
}

// DeleteBlog endpoint DELETE /blog/:id/delete
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		return
	}
	b, err := h.service.DeleteBlog(c.Request.Context(), id)
	if err != nil {
		utils.SendError(c, err)
		return
	}
	utils.SendSuccess(c, "Blog successfully removed", present(c, b))
}
