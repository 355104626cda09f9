package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/middleware"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/usecase/resource"
)

type MeHandler struct {
	users        *resource.Service[models.User]
	appointments *resource.Service[models.Appointment]
	filters      []ListFilter
}

// NewMeHandler takes the appointment list filters so /me/appointments
// accepts the same query parameters as /appointments.
func NewMeHandler(
	users *resource.Service[models.User],
	appointments *resource.Service[models.Appointment],
	filters ...ListFilter,
) *MeHandler {
	return &MeHandler{
		users:        users,
		appointments: appointments,
		filters:      filters,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, unexpected("user_get_failed"))
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.UserID(c), req.Apply)
	if err != nil {
		httperr.Respond(c, err, unexpected("user_update_failed"))
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) MyAppointments(c *gin.Context) {
	q, err := parseListQuery(c, h.filters)
	if err != nil {
		httperr.Respond(c, err, unexpected("invalid_query"))
		return
	}
	q.Where("user_id = ?", middleware.UserID(c))

	page, err := h.appointments.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err, unexpected("appointment_list_failed"))
		return
	}
	httpresp.Page(c, page)
}
