package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/middleware"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/usecase/resource"
	"github.com/BruksfildServices01/med-directory/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

// ReviewHandler reads through the generic service and writes through the
// aggregator so ratings stay in step with reviews.
type ReviewHandler struct {
	reviews    *resource.Service[models.Review]
	aggregator *review.Aggregator
	filters    []ListFilter
}

func NewReviewHandler(
	reviews *resource.Service[models.Review],
	aggregator *review.Aggregator,
	filters ...ListFilter,
) *ReviewHandler {
	return &ReviewHandler{
		reviews:    reviews,
		aggregator: aggregator,
		filters:    filters,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReviewRequest struct {
	Rating   int     `json:"rating" binding:"required,min=1,max=5"`
	Comment  string  `json:"comment"`
	ClinicID *string `json:"clinic_id"`
	DoctorID *string `json:"doctor_id"`
}

type UpdateReviewRequest struct {
	Rating   *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment  *string `json:"comment"`
	ClinicID *string `json:"clinic_id"`
	DoctorID *string `json:"doctor_id"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *ReviewHandler) List(c *gin.Context) {
	q, err := parseListQuery(c, h.filters)
	if err != nil {
		httperr.Respond(c, err, unexpected("invalid_query"))
		return
	}

	page, err := h.reviews.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err, unexpected("review_list_failed"))
		return
	}
	httpresp.Page(c, page)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, unexpected("review_get_failed"))
		return
	}
	httpresp.OK(c, r)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	r, err := h.aggregator.Create(c.Request.Context(), review.CreateInput{
		UserID:   middleware.UserID(c),
		Rating:   req.Rating,
		Comment:  req.Comment,
		ClinicID: req.ClinicID,
		DoctorID: req.DoctorID,
	})
	if err != nil {
		httperr.Respond(c, err, unexpected("review_create_failed"))
		return
	}
	httpresp.Created(c, r)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	r, err := h.aggregator.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), review.UpdateInput{
		Rating:   req.Rating,
		Comment:  req.Comment,
		ClinicID: req.ClinicID,
		DoctorID: req.DoctorID,
	})
	if err != nil {
		httperr.Respond(c, err, unexpected("review_update_failed"))
		return
	}
	httpresp.OK(c, r)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.aggregator.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err, unexpected("review_delete_failed"))
		return
	}
	httpresp.Message(c, "Review deleted")
}

// DeleteUser removes a user account. It goes through the aggregator because
// the user's reviews disappear with it.
func (h *ReviewHandler) DeleteUser(c *gin.Context) {
	if err := h.aggregator.DeleteUser(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err, unexpected("user_delete_failed"))
		return
	}
	httpresp.Message(c, "Deleted successfully")
}
