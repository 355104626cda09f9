package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/appointment"
	"github.com/BruksfildServices01/med-directory/internal/dto"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/timezone"
)

// ListDoctorSchedule lists a doctor's appointments for one day or month in
// the application timezone.
type ListDoctorSchedule struct {
	repo     domain.Repository
	timezone string
}

func NewListDoctorSchedule(
	repo domain.Repository,
	tz string,
) *ListDoctorSchedule {
	return &ListDoctorSchedule{
		repo:     repo,
		timezone: tz,
	}
}

func (uc *ListDoctorSchedule) ByDate(
	ctx context.Context,
	doctorID string,
	date string,
) ([]dto.AppointmentListDTO, error) {

	start, end, err := timezone.DayRange(date, uc.timezone)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, doctorID, start, end)
}

func (uc *ListDoctorSchedule) ByMonth(
	ctx context.Context,
	doctorID string,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start, end, err := timezone.MonthRange(year, month, uc.timezone)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, doctorID, start, end)
}

func (uc *ListDoctorSchedule) list(
	ctx context.Context,
	doctorID string,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListDoctorAppointmentsForPeriod(ctx, doctorID, start, end)
	if err != nil {
		return nil, httperr.Wrap(err, httperr.BusinessError{
			Kind:    httperr.KindBadRequest,
			Code:    "schedule_fetch_failed",
			Message: "Failed to load schedule",
		})
	}

	loc := timezone.Location(uc.timezone)
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.NewAppointmentListDTO(ap, loc))
	}

	return out, nil
}
