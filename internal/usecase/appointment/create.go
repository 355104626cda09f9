package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	domain "github.com/BruksfildServices01/med-directory/internal/domain/appointment"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID          string
	ClinicID        *string
	DoctorID        *string
	AppointmentDate time.Time
	Status          string
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

var errCreateFailed = httperr.BusinessError{
	Kind:    httperr.KindBadRequest,
	Code:    "appointment_create_failed",
	Message: "Failed to create appointment",
}

func slotTaken() error {
	return httperr.ErrConflict("appointment_exists", "This appointment already exists")
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books the slot. The double-booking check is a read before the
// insert; two concurrent requests for the same slot can both pass it.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Status
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	if in.AppointmentDate.IsZero() {
		return nil, httperr.ErrBadRequest("invalid_date_or_time", "Appointment date is required")
	}
	at := in.AppointmentDate.UTC()

	// --------------------------------------------------
	// 2️⃣ Double booking
	// --------------------------------------------------
	if in.DoctorID != nil {
		taken, err := uc.repo.HasDoctorBooking(ctx, *in.DoctorID, at, "")
		if err != nil {
			return nil, httperr.Wrap(err, errCreateFailed)
		}
		if taken {
			uc.audit.Dispatch(audit.Event{
				UserID:   audit.StringPtr(in.UserID),
				Action:   audit.ActionAppointmentConflict,
				Entity:   "appointment",
				Metadata: map[string]any{"doctor_id": *in.DoctorID, "appointment_date": at},
			})
			return nil, slotTaken()
		}
	}

	// --------------------------------------------------
	// 3️⃣ Create
	// --------------------------------------------------
	ap := &models.Appointment{
		AppointmentDate: at,
		Status:          string(status),
		Notes:           in.Notes,
		UserID:          in.UserID,
		ClinicID:        in.ClinicID,
		DoctorID:        in.DoctorID,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, httperr.Wrap(err, errCreateFailed)
	}

	// --------------------------------------------------
	// 4️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(in.UserID),
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: audit.StringPtr(ap.ID),
	})

	return ap, nil
}
