package models

type Review struct {
	Base

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	ClinicID *string `gorm:"type:varchar(36);index" json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic,omitempty"`

	DoctorID *string `gorm:"type:varchar(36);index" json:"doctor_id"`
	Doctor   *Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor,omitempty"`
}
