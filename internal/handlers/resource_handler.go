package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/usecase/resource"
)

// Patcher is a request body that copies its set fields onto a model.
type Patcher[T any] interface {
	Apply(entity *T)
}

// ======================================================
// HANDLER
// ======================================================

// ResourceHandler serves the five CRUD routes of one table. P is the JSON
// body used for both create and update.
type ResourceHandler[T any, P Patcher[T]] struct {
	svc     *resource.Service[T]
	filters []ListFilter
}

func NewResourceHandler[T any, P Patcher[T]](
	svc *resource.Service[T],
	filters ...ListFilter,
) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{
		svc:     svc,
		filters: filters,
	}
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}

func unexpected(code string) httperr.BusinessError {
	return httperr.BusinessError{Kind: httperr.KindBadRequest, Code: code, Message: "Request failed"}
}

func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	q, err := parseListQuery(c, h.filters)
	if err != nil {
		httperr.Respond(c, err, unexpected("invalid_query"))
		return
	}

	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err, unexpected("list_failed"))
		return
	}

	httpresp.Page(c, page)
}

func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	entity, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, unexpected("get_failed"))
		return
	}
	httpresp.OK(c, entity)
}

func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	var req P
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	entity := new(T)
	req.Apply(entity)

	created, err := h.svc.Create(c.Request.Context(), entity)
	if err != nil {
		httperr.Respond(c, err, unexpected("create_failed"))
		return
	}
	httpresp.Created(c, created)
}

func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	var req P
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Apply)
	if err != nil {
		httperr.Respond(c, err, unexpected("update_failed"))
		return
	}
	httpresp.OK(c, updated)
}

func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Respond(c, err, unexpected("delete_failed"))
		return
	}
	httpresp.Message(c, "Deleted successfully")
}

// Register mounts the read routes on public and the writes on admin.
func (h *ResourceHandler[T, P]) Register(
	path string,
	public gin.IRoutes,
	admin gin.IRoutes,
) {
	public.GET(path, h.List)
	public.GET(path+"/:id", h.Get)

	admin.POST(path, h.Create)
	admin.PATCH(path+"/:id", h.Update)
	admin.DELETE(path+"/:id", h.Delete)
}
