package resource

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

func lowerEq(column, value string) (string, []any, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	return "LOWER(" + column + ") = ?", []any{v}, v != ""
}

// nullableEq matches a nullable foreign key, treating nil as IS NULL.
func nullableEq(column string, value *string) (string, []any) {
	if value == nil {
		return column + " IS NULL", nil
	}
	return column + " = ?", []any{*value}
}

func RegionKey(r *models.Region) (string, []any, bool) {
	return lowerEq("name", r.Name)
}

func SpecialtyKey(s *models.Specialty) (string, []any, bool) {
	return lowerEq("name", s.Name)
}

func ClinicKey(c *models.Clinic) (string, []any, bool) {
	return lowerEq("name", c.Name)
}

func MedicationKey(m *models.Medication) (string, []any, bool) {
	return lowerEq("name", m.Name)
}

func MedicationCategoryKey(m *models.MedicationCategory) (string, []any, bool) {
	return lowerEq("name", m.Name)
}

func PharmacyKey(p *models.Pharmacy) (string, []any, bool) {
	return lowerEq("name", p.Name)
}

func ArticleKey(a *models.Article) (string, []any, bool) {
	return lowerEq("title", a.Title)
}

func PromotionKey(p *models.Promotion) (string, []any, bool) {
	return lowerEq("title", p.Title)
}

func ContactKey(c *models.Contact) (string, []any, bool) {
	return lowerEq("email", c.Email)
}

func UserKey(u *models.User) (string, []any, bool) {
	return lowerEq("email", u.Email)
}

// DoctorKey treats a doctor as duplicate when the clinic and specialty pair
// is already taken.
func DoctorKey(d *models.Doctor) (string, []any, bool) {
	if d.ClinicID == nil && d.SpecialtyID == nil {
		return "", nil, false
	}
	c1, a1 := nullableEq("clinic_id", d.ClinicID)
	c2, a2 := nullableEq("specialty_id", d.SpecialtyID)
	return c1 + " AND " + c2, append(a1, a2...), true
}

func ClinicServiceKey(cs *models.ClinicService) (string, []any, bool) {
	return "clinic_id = ? AND service_id = ?", []any{cs.ClinicID, cs.ServiceID}, true
}

func MedicationPriceKey(mp *models.MedicationPrice) (string, []any, bool) {
	return "medication_id = ? AND pharmacy_id = ?", []any{mp.MedicationID, mp.PharmacyID}, true
}

// ======================================================
// Reference checks
// ======================================================

func mustExist[T any](ctx context.Context, db *gorm.DB, entity, id string) error {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return httperr.EntityNotFound(entity, id)
	}
	return nil
}

func optionalExist[T any](ctx context.Context, db *gorm.DB, entity string, id *string) error {
	if id == nil {
		return nil
	}
	return mustExist[T](ctx, db, entity, *id)
}

// MedicationPriceRefs requires both the medication and the pharmacy to exist.
func MedicationPriceRefs(db *gorm.DB) Validator[models.MedicationPrice] {
	return func(ctx context.Context, mp *models.MedicationPrice) error {
		if err := mustExist[models.Medication](ctx, db, "medication", mp.MedicationID); err != nil {
			return err
		}
		return mustExist[models.Pharmacy](ctx, db, "pharmacy", mp.PharmacyID)
	}
}

func ClinicServiceRefs(db *gorm.DB) Validator[models.ClinicService] {
	return func(ctx context.Context, cs *models.ClinicService) error {
		if err := mustExist[models.Clinic](ctx, db, "clinic", cs.ClinicID); err != nil {
			return err
		}
		return mustExist[models.Service](ctx, db, "service", cs.ServiceID)
	}
}

func DoctorRefs(db *gorm.DB) Validator[models.Doctor] {
	return func(ctx context.Context, d *models.Doctor) error {
		if err := optionalExist[models.Clinic](ctx, db, "clinic", d.ClinicID); err != nil {
			return err
		}
		return optionalExist[models.Specialty](ctx, db, "specialty", d.SpecialtyID)
	}
}

func MedicationFAQRefs(db *gorm.DB) Validator[models.MedicationFAQ] {
	return func(ctx context.Context, f *models.MedicationFAQ) error {
		return mustExist[models.Medication](ctx, db, "medication", f.MedicationID)
	}
}
