package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/med-directory/internal/dbtest"
	domain "github.com/BruksfildServices01/med-directory/internal/domain/appointment"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/infra/repository"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

type fixture struct {
	db     *gorm.DB
	repo   *repository.AppointmentGormRepository
	user   models.User
	doctor models.Doctor
	clinic models.Clinic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)

	f := &fixture{
		db:     db,
		repo:   repository.NewAppointmentGormRepository(db),
		user:   models.User{Name: "Ali", Surname: "Valiev", Email: "ali@x.io", PasswordHash: "h"},
		clinic: models.Clinic{Name: "City"},
	}
	require.NoError(t, db.Create(&f.user).Error)
	require.NoError(t, db.Create(&f.clinic).Error)

	f.doctor = models.Doctor{Bio: "cardiologist", ClinicID: &f.clinic.ID}
	require.NoError(t, db.Create(&f.doctor).Error)
	return f
}

func slot() time.Time {
	t, _ := time.Parse(time.RFC3339, "2025-08-20T10:30:00Z")
	return t
}

func TestCreateDoubleBookingConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil)

	ap, err := uc.Execute(ctx, CreateAppointmentInput{
		UserID:          f.user.ID,
		DoctorID:        &f.doctor.ID,
		ClinicID:        &f.clinic.ID,
		AppointmentDate: slot(),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), ap.Status)

	_, err = uc.Execute(ctx, CreateAppointmentInput{
		UserID:          f.user.ID,
		DoctorID:        &f.doctor.ID,
		AppointmentDate: slot().In(time.FixedZone("UZT", 5*3600)),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOtherSlotOrNoDoctorSucceeds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil)

	_, err := uc.Execute(ctx, CreateAppointmentInput{UserID: f.user.ID, DoctorID: &f.doctor.ID, AppointmentDate: slot()})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateAppointmentInput{UserID: f.user.ID, DoctorID: &f.doctor.ID, AppointmentDate: slot().Add(30 * time.Minute)})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateAppointmentInput{UserID: f.user.ID, ClinicID: &f.clinic.ID, AppointmentDate: slot()})
	require.NoError(t, err)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:          f.user.ID,
		AppointmentDate: slot(),
		Status:          "BOOKED",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestUpdateRechecksSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	create := NewCreateAppointment(f.repo, nil)
	update := NewUpdateAppointment(f.repo, nil)

	_, err := create.Execute(ctx, CreateAppointmentInput{UserID: f.user.ID, DoctorID: &f.doctor.ID, AppointmentDate: slot()})
	require.NoError(t, err)

	later := slot().Add(time.Hour)
	second, err := create.Execute(ctx, CreateAppointmentInput{UserID: f.user.ID, DoctorID: &f.doctor.ID, AppointmentDate: later})
	require.NoError(t, err)

	notes := "bring results"
	_, err = update.Execute(ctx, f.user.ID, second.ID, UpdateAppointmentInput{Notes: &notes, AppointmentDate: &later})
	require.NoError(t, err, "keeping its own slot is not a conflict")

	taken := slot()
	_, err = update.Execute(ctx, f.user.ID, second.ID, UpdateAppointmentInput{AppointmentDate: &taken})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	_, err = update.Execute(ctx, f.user.ID, "missing", UpdateAppointmentInput{Notes: &notes})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestTransitionAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap, err := NewCreateAppointment(f.repo, nil).Execute(ctx, CreateAppointmentInput{
		UserID:          f.user.ID,
		DoctorID:        &f.doctor.ID,
		AppointmentDate: slot(),
	})
	require.NoError(t, err)

	uc := NewTransitionAppointment(f.repo, nil, "UTC")

	_, err = uc.Execute(ctx, f.user.ID, ap.ID, domain.ActionComplete)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	confirmed, err := uc.Execute(ctx, f.user.ID, ap.ID, domain.ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	completed, err := uc.Execute(ctx, f.user.ID, ap.ID, domain.ActionComplete)
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)

	stored, err := f.repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)

	_, err = uc.Execute(ctx, f.user.ID, "missing", domain.ActionCancel)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestDoctorScheduleByDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	create := NewCreateAppointment(f.repo, nil)

	for _, at := range []time.Time{slot(), slot().Add(2 * time.Hour), slot().Add(24 * time.Hour)} {
		_, err := create.Execute(ctx, CreateAppointmentInput{UserID: f.user.ID, DoctorID: &f.doctor.ID, ClinicID: &f.clinic.ID, AppointmentDate: at})
		require.NoError(t, err)
	}

	uc := NewListDoctorSchedule(f.repo, "UTC")

	day, err := uc.ByDate(ctx, f.doctor.ID, "2025-08-20")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "Ali Valiev", day[0].PatientName)
	assert.Equal(t, "City", day[0].ClinicName)
	assert.True(t, day[0].AppointmentDate.Before(day[1].AppointmentDate))

	month, err := uc.ByMonth(ctx, f.doctor.ID, 2025, 8)
	require.NoError(t, err)
	assert.Len(t, month, 3)

	_, err = uc.ByDate(ctx, f.doctor.ID, "yesterday")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestUpdateStatusFollowsTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	update := NewUpdateAppointment(f.repo, nil)

	ap, err := NewCreateAppointment(f.repo, nil).Execute(ctx, CreateAppointmentInput{
		UserID:          f.user.ID,
		DoctorID:        &f.doctor.ID,
		AppointmentDate: slot(),
	})
	require.NoError(t, err)

	completed := string(domain.StatusCompleted)
	_, err = update.Execute(ctx, f.user.ID, ap.ID, UpdateAppointmentInput{Status: &completed})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	confirmed := string(domain.StatusConfirmed)
	got, err := update.Execute(ctx, f.user.ID, ap.ID, UpdateAppointmentInput{Status: &confirmed})
	require.NoError(t, err)
	require.NotNil(t, got.ConfirmedAt)

	stored, err := f.repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmed, stored.Status)
	assert.NotNil(t, stored.ConfirmedAt)

	pending := string(domain.StatusPending)
	_, err = update.Execute(ctx, f.user.ID, ap.ID, UpdateAppointmentInput{Status: &pending})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
