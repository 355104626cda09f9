package models

type Article struct {
	Base

	Title    string `gorm:"size:300;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `gorm:"size:500" json:"image_url"`

	UserID *string `gorm:"type:varchar(36);index" json:"user_id"`
	User   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
}

type Promotion struct {
	Base

	Title           string  `gorm:"size:300;not null" json:"title"`
	Description     string  `gorm:"type:text" json:"description"`
	DiscountPercent float64 `gorm:"not null;default:0" json:"discount_percent"`

	ClinicID *string `gorm:"type:varchar(36);index" json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"clinic,omitempty"`
}

type Banner struct {
	Base

	ImageURL string `gorm:"size:500;not null" json:"image_url"`
	LinkURL  string `gorm:"size:500" json:"link_url"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

// FAQ is a site-wide question; medication specific ones live in MedicationFAQ.
type FAQ struct {
	Base

	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
}

type Contact struct {
	Base

	Name    string `gorm:"size:150;not null" json:"name"`
	Phone   string `gorm:"size:30" json:"phone"`
	Email   string `gorm:"size:150;not null" json:"email"`
	Message string `gorm:"type:text" json:"message"`
}
