package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	domain "github.com/BruksfildServices01/med-directory/internal/domain/appointment"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

type UpdateAppointmentInput struct {
	ClinicID        *string
	DoctorID        *string
	AppointmentDate *time.Time
	Status          *string
	Notes           *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

var errUpdateFailed = httperr.BusinessError{
	Kind:    httperr.KindBadRequest,
	Code:    "appointment_update_failed",
	Message: "Failed to update appointment",
}

// Execute patches the appointment, re-running the double-booking check when
// the doctor or the time changes. A status change follows the same
// transitions as confirm/cancel/complete.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actorID string,
	id string,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.Wrap(err, errUpdateFailed)
	}

	slotChanged := false

	if in.DoctorID != nil {
		slotChanged = ap.DoctorID == nil || *ap.DoctorID != *in.DoctorID
		ap.DoctorID = in.DoctorID
	}
	if in.AppointmentDate != nil {
		at := in.AppointmentDate.UTC()
		if !at.Equal(ap.AppointmentDate) {
			slotChanged = true
		}
		ap.AppointmentDate = at
	}
	if in.ClinicID != nil {
		ap.ClinicID = in.ClinicID
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.Status != nil {
		s, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := domain.MoveTo(ap, s, uc.now().UTC()); err != nil {
			return nil, err
		}
	}

	if slotChanged && ap.DoctorID != nil {
		taken, err := uc.repo.HasDoctorBooking(ctx, *ap.DoctorID, ap.AppointmentDate, ap.ID)
		if err != nil {
			return nil, httperr.Wrap(err, errUpdateFailed)
		}
		if taken {
			return nil, slotTaken()
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Wrap(err, errUpdateFailed)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   audit.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: audit.StringPtr(ap.ID),
	})

	return ap, nil
}
