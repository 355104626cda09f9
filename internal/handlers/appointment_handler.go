package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/appointment"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/middleware"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/usecase/appointment"
	"github.com/BruksfildServices01/med-directory/internal/usecase/resource"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	appointments *resource.Service[models.Appointment]
	create       *appointment.CreateAppointment
	update       *appointment.UpdateAppointment
	transition   *appointment.TransitionAppointment
	schedule     *appointment.ListDoctorSchedule
	filters      []ListFilter
}

func NewAppointmentHandler(
	appointments *resource.Service[models.Appointment],
	create *appointment.CreateAppointment,
	update *appointment.UpdateAppointment,
	transition *appointment.TransitionAppointment,
	schedule *appointment.ListDoctorSchedule,
	filters ...ListFilter,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		create:       create,
		update:       update,
		transition:   transition,
		schedule:     schedule,
		filters:      filters,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	ClinicID        *string   `json:"clinic_id"`
	DoctorID        *string   `json:"doctor_id"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
	ClinicID        *string    `json:"clinic_id"`
	DoctorID        *string    `json:"doctor_id"`
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q, err := parseListQuery(c, h.filters)
	if err != nil {
		httperr.Respond(c, err, unexpected("invalid_query"))
		return
	}

	page, err := h.appointments.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err, unexpected("appointment_list_failed"))
		return
	}
	httpresp.Page(c, page)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.appointments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, unexpected("appointment_get_failed"))
		return
	}
	httpresp.OK(c, ap)
}

// DoctorSchedule answers ?date=YYYY-MM-DD or ?year=&month=.
func (h *AppointmentHandler) DoctorSchedule(c *gin.Context) {
	ctx := c.Request.Context()
	doctorID := c.Param("id")

	if date := c.Query("date"); date != "" {
		out, err := h.schedule.ByDate(ctx, doctorID, date)
		if err != nil {
			httperr.Respond(c, err, unexpected("schedule_fetch_failed"))
			return
		}
		httpresp.List(c, out)
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_period", "Provide date or year and month")
		return
	}

	out, err := h.schedule.ByMonth(ctx, doctorID, year, month)
	if err != nil {
		httperr.Respond(c, err, unexpected("schedule_fetch_failed"))
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// WRITE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		UserID:          middleware.UserID(c),
		ClinicID:        req.ClinicID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, unexpected("appointment_create_failed"))
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), appointment.UpdateAppointmentInput{
		ClinicID:        req.ClinicID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, unexpected("appointment_update_failed"))
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.appointments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Respond(c, err, unexpected("appointment_delete_failed"))
		return
	}
	httpresp.Message(c, "Appointment deleted")
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) transitionTo(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		ap, err := h.transition.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), action)
		if err != nil {
			httperr.Respond(c, err, unexpected("appointment_"+string(action)+"_failed"))
			return
		}
		httpresp.OK(c, ap)
	}
}

func (h *AppointmentHandler) Confirm() gin.HandlerFunc {
	return h.transitionTo(domain.ActionConfirm)
}

func (h *AppointmentHandler) Cancel() gin.HandlerFunc {
	return h.transitionTo(domain.ActionCancel)
}

func (h *AppointmentHandler) Complete() gin.HandlerFunc {
	return h.transitionTo(domain.ActionComplete)
}
