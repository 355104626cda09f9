package dto

import (
	"time"

	"github.com/BruksfildServices01/med-directory/internal/models"
)

// AppointmentListDTO is the compact row used by doctor schedules.
type AppointmentListDTO struct {
	ID              string    `json:"id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	PatientName     string    `json:"patient_name"`
	ClinicName      string    `json:"clinic_name"`
}

func NewAppointmentListDTO(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:              ap.ID,
		AppointmentDate: ap.AppointmentDate.In(loc),
		Status:          ap.Status,
		Notes:           ap.Notes,
	}
	if ap.User != nil {
		out.PatientName = ap.User.Name
		if ap.User.Surname != "" {
			out.PatientName += " " + ap.User.Surname
		}
	}
	if ap.Clinic != nil {
		out.ClinicName = ap.Clinic.Name
	}
	return out
}
