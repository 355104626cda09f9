package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/med-directory/internal/models"
)

type Repository interface {
	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// HasDoctorBooking reports an existing appointment for the doctor at
	// exactly the given instant, ignoring excludeID.
	HasDoctorBooking(
		ctx context.Context,
		doctorID string,
		at time.Time,
		excludeID string,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Schedule --------
	ListDoctorAppointmentsForPeriod(
		ctx context.Context,
		doctorID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
