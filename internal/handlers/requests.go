package handlers

import "github.com/BruksfildServices01/med-directory/internal/models"

// Request bodies for the generic resource routes. Every field is optional so
// the same body serves create and partial update. Computed columns (rating,
// image urls owned by the upload endpoints) are not exposed.

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

type NameRequest struct {
	Name *string `json:"name"`
}

type RegionRequest NameRequest

func (r RegionRequest) Apply(m *models.Region) { setString(&m.Name, r.Name) }

type SpecialtyRequest NameRequest

func (r SpecialtyRequest) Apply(m *models.Specialty) { setString(&m.Name, r.Name) }

type ServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category" binding:"omitempty,oneof=DIAGNOSTICS TREATMENT ANALYSIS"`
	ImageURL    *string `json:"image_url"`
}

func (r ServiceRequest) Apply(m *models.Service) {
	setString(&m.Name, r.Name)
	setString(&m.Description, r.Description)
	setString(&m.Category, r.Category)
	setString(&m.ImageURL, r.ImageURL)
}

type ClinicServiceRequest struct {
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gte=0"`
	ClinicID        *string  `json:"clinic_id"`
	ServiceID       *string  `json:"service_id"`
}

func (r ClinicServiceRequest) Apply(m *models.ClinicService) {
	if r.Price != nil {
		m.Price = *r.Price
	}
	if r.DurationMinutes != nil {
		m.DurationMinutes = *r.DurationMinutes
	}
	setString(&m.ClinicID, r.ClinicID)
	setString(&m.ServiceID, r.ServiceID)
}

type ClinicRequest struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	Address      *string              `json:"address"`
	Phone        *string              `json:"phone"`
	Email        *string              `json:"email" binding:"omitempty,email"`
	Website      *string              `json:"website"`
	OpeningHours *models.OpeningHours `json:"opening_hours"`
	YandexMapURL *string              `json:"yandex_map_url"`
	Type         *string              `json:"type" binding:"omitempty,oneof=PUBLIC PRIVATE VETERINARY"`
	RegionID     *string              `json:"region_id"`
}

func (r ClinicRequest) Apply(m *models.Clinic) {
	setString(&m.Name, r.Name)
	setString(&m.Description, r.Description)
	setString(&m.Address, r.Address)
	setString(&m.Phone, r.Phone)
	setString(&m.Email, r.Email)
	setString(&m.Website, r.Website)
	if r.OpeningHours != nil {
		m.OpeningHours = *r.OpeningHours
	}
	setOptional(&m.YandexMapURL, r.YandexMapURL)
	setString(&m.Type, r.Type)
	setOptional(&m.RegionID, r.RegionID)
}

type DoctorRequest struct {
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,gte=0"`
	ImageURL        *string `json:"image_url"`
	ClinicID        *string `json:"clinic_id"`
	SpecialtyID     *string `json:"specialty_id"`
}

func (r DoctorRequest) Apply(m *models.Doctor) {
	setString(&m.Bio, r.Bio)
	if r.ExperienceYears != nil {
		m.ExperienceYears = *r.ExperienceYears
	}
	setString(&m.ImageURL, r.ImageURL)
	setOptional(&m.ClinicID, r.ClinicID)
	setOptional(&m.SpecialtyID, r.SpecialtyID)
}

// UserRequest is the admin view of a profile; passwords change elsewhere.
type UserRequest struct {
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
	Role      *string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	RegionID  *string `json:"region_id"`
}

func (r UserRequest) Apply(m *models.User) {
	setString(&m.Name, r.Name)
	setString(&m.Surname, r.Surname)
	setString(&m.Phone, r.Phone)
	setString(&m.AvatarURL, r.AvatarURL)
	setString(&m.Role, r.Role)
	setOptional(&m.RegionID, r.RegionID)
}

// ProfileRequest is what a user may change on their own account.
type ProfileRequest struct {
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
	RegionID  *string `json:"region_id"`
}

func (r ProfileRequest) Apply(m *models.User) {
	setString(&m.Name, r.Name)
	setString(&m.Surname, r.Surname)
	setString(&m.Phone, r.Phone)
	setString(&m.AvatarURL, r.AvatarURL)
	setOptional(&m.RegionID, r.RegionID)
}

// --------------------------------------------------
// Pharmacy
// --------------------------------------------------

type MedicationCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r MedicationCategoryRequest) Apply(m *models.MedicationCategory) {
	setString(&m.Name, r.Name)
	setString(&m.Description, r.Description)
}

type MedicationRequest struct {
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	Composition          *string `json:"composition"`
	Manufacturer         *string `json:"manufacturer"`
	Country              *string `json:"country"`
	PrescriptionRequired *bool   `json:"prescription_required"`
	CategoryID           *string `json:"category_id"`
}

func (r MedicationRequest) Apply(m *models.Medication) {
	setString(&m.Name, r.Name)
	setString(&m.Description, r.Description)
	setString(&m.Composition, r.Composition)
	setString(&m.Manufacturer, r.Manufacturer)
	setString(&m.Country, r.Country)
	if r.PrescriptionRequired != nil {
		m.PrescriptionRequired = *r.PrescriptionRequired
	}
	setOptional(&m.CategoryID, r.CategoryID)
}

type PharmacyRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
	OpeningHours *string `json:"opening_hours"`
}

func (r PharmacyRequest) Apply(m *models.Pharmacy) {
	setString(&m.Name, r.Name)
	setString(&m.Address, r.Address)
	setString(&m.Phone, r.Phone)
	setString(&m.Website, r.Website)
	setString(&m.OpeningHours, r.OpeningHours)
}

type MedicationPriceRequest struct {
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	Available    *bool    `json:"available"`
	MedicationID *string  `json:"medication_id"`
	PharmacyID   *string  `json:"pharmacy_id"`
}

func (r MedicationPriceRequest) Apply(m *models.MedicationPrice) {
	if r.Price != nil {
		m.Price = *r.Price
	}
	if r.Available != nil {
		m.Available = *r.Available
	}
	setString(&m.MedicationID, r.MedicationID)
	setString(&m.PharmacyID, r.PharmacyID)
}

type MedicationFAQRequest struct {
	Question     *string `json:"question"`
	Answer       *string `json:"answer"`
	MedicationID *string `json:"medication_id"`
}

func (r MedicationFAQRequest) Apply(m *models.MedicationFAQ) {
	setString(&m.Question, r.Question)
	setString(&m.Answer, r.Answer)
	setString(&m.MedicationID, r.MedicationID)
}

// --------------------------------------------------
// Content
// --------------------------------------------------

type ArticleRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
	UserID   *string `json:"user_id"`
}

func (r ArticleRequest) Apply(m *models.Article) {
	setString(&m.Title, r.Title)
	setString(&m.Content, r.Content)
	setString(&m.ImageURL, r.ImageURL)
	setOptional(&m.UserID, r.UserID)
}

type PromotionRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	ClinicID        *string  `json:"clinic_id"`
}

func (r PromotionRequest) Apply(m *models.Promotion) {
	setString(&m.Title, r.Title)
	setString(&m.Description, r.Description)
	if r.DiscountPercent != nil {
		m.DiscountPercent = *r.DiscountPercent
	}
	setOptional(&m.ClinicID, r.ClinicID)
}

type BannerRequest struct {
	ImageURL *string `json:"image_url"`
	LinkURL  *string `json:"link_url"`
	Position *int    `json:"position"`
}

func (r BannerRequest) Apply(m *models.Banner) {
	setString(&m.ImageURL, r.ImageURL)
	setString(&m.LinkURL, r.LinkURL)
	if r.Position != nil {
		m.Position = *r.Position
	}
}

type FAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

func (r FAQRequest) Apply(m *models.FAQ) {
	setString(&m.Question, r.Question)
	setString(&m.Answer, r.Answer)
}

type ContactRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Message *string `json:"message"`
}

func (r ContactRequest) Apply(m *models.Contact) {
	setString(&m.Name, r.Name)
	setString(&m.Phone, r.Phone)
	setString(&m.Email, r.Email)
	setString(&m.Message, r.Message)
}
