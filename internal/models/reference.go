package models

const (
	ServiceCategoryDiagnostics = "DIAGNOSTICS"
	ServiceCategoryTreatment   = "TREATMENT"
	ServiceCategoryAnalysis    = "ANALYSIS"
)

type Region struct {
	Base
	Name string `gorm:"size:150;not null;uniqueIndex" json:"name"`
}

type Specialty struct {
	Base
	Name string `gorm:"size:150;not null;uniqueIndex" json:"name"`
}

type Service struct {
	Base

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:20;not null" json:"category"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
}

type ClinicService struct {
	Base

	Price           float64 `gorm:"not null" json:"price"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`

	ClinicID string  `gorm:"type:varchar(36);not null;index" json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"clinic,omitempty"`

	ServiceID string   `gorm:"type:varchar(36);not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`
}
