package models

import "time"

type Appointment struct {
	Base

	AppointmentDate time.Time `gorm:"not null;index" json:"appointment_date"`
	Status          string    `gorm:"size:20;default:'PENDING'" json:"status"`
	Notes           string    `gorm:"size:500" json:"notes"`

	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	ClinicID *string `gorm:"type:varchar(36);index" json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic,omitempty"`

	DoctorID *string `gorm:"type:varchar(36);index" json:"doctor_id"`
	Doctor   *Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
