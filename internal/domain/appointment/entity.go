package appointment

import (
	"time"

	"github.com/BruksfildServices01/med-directory/internal/models"
)

// ===============================
// Domain Actions
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Apply runs the transition named by action.
func Apply(action Action, ap *models.Appointment, now time.Time) error {
	switch action {
	case ActionConfirm:
		return Confirm(ap, now)
	case ActionCancel:
		return Cancel(ap, now)
	case ActionComplete:
		return Complete(ap, now)
	}
	return invalidState()
}

// MoveTo drives ap to target through the transition that reaches it. Staying
// on the current status is a no-op; nothing leads back to PENDING.
func MoveTo(ap *models.Appointment, target Status, now time.Time) error {
	if Status(ap.Status) == target {
		return nil
	}

	switch target {
	case StatusConfirmed:
		return Confirm(ap, now)
	case StatusCancelled:
		return Cancel(ap, now)
	case StatusCompleted:
		return Complete(ap, now)
	}
	return invalidState()
}
