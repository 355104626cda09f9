package appointment

import (
	"context"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	domain "github.com/BruksfildServices01/med-directory/internal/domain/appointment"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/timezone"
)

var transitionAudit = map[domain.Action]string{
	domain.ActionConfirm:  audit.ActionAppointmentConfirmed,
	domain.ActionCancel:   audit.ActionAppointmentCancelled,
	domain.ActionComplete: audit.ActionAppointmentCompleted,
}

// TransitionAppointment confirms, cancels or completes an appointment.
type TransitionAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
	action domain.Action,
) (*models.Appointment, error) {

	fallback := httperr.BusinessError{
		Kind:    httperr.KindBadRequest,
		Code:    "appointment_" + string(action) + "_failed",
		Message: "Failed to " + string(action) + " appointment",
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.Wrap(err, fallback)
	}

	now := timezone.NowIn(uc.timezone)
	if err := domain.Apply(action, ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Wrap(err, fallback)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   transitionAudit[action],
		Entity:   "appointment",
		EntityID: audit.StringPtr(ap.ID),
	})

	return ap, nil
}
