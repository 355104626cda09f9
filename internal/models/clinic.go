package models

const (
	ClinicTypePublic     = "PUBLIC"
	ClinicTypePrivate    = "PRIVATE"
	ClinicTypeVeterinary = "VETERINARY"
)

// OpeningHours maps a weekday to a free-form "09:00-18:00" style range.
type OpeningHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

type Clinic struct {
	Base

	Name         string       `gorm:"size:200;not null;index" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	Address      string       `gorm:"size:300" json:"address"`
	Phone        string       `gorm:"size:30" json:"phone"`
	Email        string       `gorm:"size:150" json:"email"`
	Website      string       `gorm:"size:300" json:"website"`
	OpeningHours OpeningHours `gorm:"type:text;serializer:json" json:"opening_hours"`
	LogoURL      string       `gorm:"size:500" json:"logo_url"`
	ImageURL     *string      `gorm:"size:500" json:"image_url"`
	YandexMapURL *string      `gorm:"size:500" json:"yandex_map_url"`
	Type         string       `gorm:"size:20;default:'PUBLIC'" json:"type"`
	Rating       float64      `gorm:"not null;default:0" json:"rating"`

	RegionID *string `gorm:"type:varchar(36);index" json:"region_id"`
	Region   *Region `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"region,omitempty"`
}

type Doctor struct {
	Base

	Bio             string  `gorm:"type:text" json:"bio"`
	ExperienceYears int     `gorm:"not null;default:0" json:"experience_years"`
	ImageURL        string  `gorm:"size:500" json:"image_url"`
	Rating          float64 `gorm:"not null;default:0" json:"rating"`

	ClinicID *string `gorm:"type:varchar(36);index" json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic,omitempty"`

	SpecialtyID *string    `gorm:"type:varchar(36);index" json:"specialty_id"`
	Specialty   *Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"specialty,omitempty"`
}
