package models

type MedicationCategory struct {
	Base

	Name        string `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

type Medication struct {
	Base

	Name                 string `gorm:"size:200;not null;index" json:"name"`
	Description          string `gorm:"type:text" json:"description"`
	Composition          string `gorm:"type:text" json:"composition"`
	Manufacturer         string `gorm:"size:200" json:"manufacturer"`
	Country              string `gorm:"size:100" json:"country"`
	ImageURL             string `gorm:"size:500" json:"image_url"`
	PrescriptionRequired bool   `gorm:"not null;default:false" json:"prescription_required"`

	CategoryID *string             `gorm:"type:varchar(36);index" json:"category_id"`
	Category   *MedicationCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
}

type Pharmacy struct {
	Base

	Name         string `gorm:"size:200;not null" json:"name"`
	Address      string `gorm:"size:300" json:"address"`
	Phone        string `gorm:"size:30" json:"phone"`
	Website      string `gorm:"size:300" json:"website"`
	OpeningHours string `gorm:"size:200" json:"opening_hours"`
}

type MedicationPrice struct {
	Base

	Price     float64 `gorm:"not null" json:"price"`
	Available bool    `gorm:"not null;default:true" json:"available"`

	MedicationID string      `gorm:"type:varchar(36);not null;index" json:"medication_id"`
	Medication   *Medication `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"medication,omitempty"`

	PharmacyID string    `gorm:"type:varchar(36);not null;index" json:"pharmacy_id"`
	Pharmacy   *Pharmacy `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pharmacy,omitempty"`
}

type MedicationFAQ struct {
	Base

	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`

	MedicationID string      `gorm:"type:varchar(36);not null;index" json:"medication_id"`
	Medication   *Medication `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"medication,omitempty"`
}
