package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every persisted entity.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// All lists every model handled by AutoMigrate, parents first.
func All() []any {
	return []any{
		&Region{},
		&Specialty{},
		&Service{},
		&User{},
		&Clinic{},
		&Doctor{},
		&ClinicService{},
		&Review{},
		&Appointment{},
		&MedicationCategory{},
		&Medication{},
		&Pharmacy{},
		&MedicationPrice{},
		&MedicationFAQ{},
		&Article{},
		&Promotion{},
		&Banner{},
		&FAQ{},
		&Contact{},
		&AuditLog{},
	}
}
