package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/review"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReviewGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *ReviewGormRepository) ExistsForTarget(
	ctx context.Context,
	userID string,
	clinicID *string,
	doctorID *string,
	excludeID string,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if clinicID == nil {
		q = q.Where("clinic_id IS NULL")
	} else {
		q = q.Where("clinic_id = ?", *clinicID)
	}

	if doctorID == nil {
		q = q.Where("doctor_id IS NULL")
	} else {
		q = q.Where("doctor_id = ?", *doctorID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) GetReview(
	ctx context.Context,
	id string,
) (*models.Review, error) {
	return GetOrNotFound[models.Review](ctx, r.db, "review", id)
}

func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	rev *models.Review,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rev).Error
}

func (r *ReviewGormRepository) UpdateReview(
	ctx context.Context,
	rev *models.Review,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rev).Error
}

func (r *ReviewGormRepository) DeleteReview(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.EntityNotFound("review", id)
	}
	return nil
}

// --------------------------------------------------
// Authors
// --------------------------------------------------

func (r *ReviewGormRepository) ReviewsByUser(
	ctx context.Context,
	userID string,
) ([]models.Review, error) {

	var out []models.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAuthor deletes the reviews explicitly instead of relying on the
// cascade, so the caller's recompute sees them gone on every driver.
func (r *ReviewGormRepository) DeleteAuthor(
	ctx context.Context,
	userID string,
) error {

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Review{}).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.EntityNotFound("user", userID)
	}
	return nil
}

// --------------------------------------------------
// Ratings
// --------------------------------------------------

func targetColumn(t domain.Target) (column string, model any, err error) {
	switch t.Kind {
	case domain.KindClinic:
		return "clinic_id", &models.Clinic{}, nil
	case domain.KindDoctor:
		return "doctor_id", &models.Doctor{}, nil
	default:
		return "", nil, fmt.Errorf("unknown rating target %q", t.Kind)
	}
}

func (r *ReviewGormRepository) AverageRating(
	ctx context.Context,
	target domain.Target,
) (float64, error) {

	column, _, err := targetColumn(target)
	if err != nil {
		return 0, err
	}

	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Where(column+" = ?", target.ID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

// SetRating writes the aggregate. A target deleted meanwhile is skipped.
func (r *ReviewGormRepository) SetRating(
	ctx context.Context,
	target domain.Target,
	rating float64,
) error {

	_, model, err := targetColumn(target)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", target.ID).
		UpdateColumn("rating", rating).Error
}

func (r *ReviewGormRepository) RatedTargets(
	ctx context.Context,
) ([]domain.Target, error) {

	var clinicIDs, doctorIDs []string

	if err := r.db.WithContext(ctx).
		Model(&models.Clinic{}).
		Pluck("id", &clinicIDs).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Pluck("id", &doctorIDs).Error; err != nil {
		return nil, err
	}

	targets := make([]domain.Target, 0, len(clinicIDs)+len(doctorIDs))
	for _, id := range clinicIDs {
		targets = append(targets, domain.Target{Kind: domain.KindClinic, ID: id})
	}
	for _, id := range doctorIDs {
		targets = append(targets, domain.Target{Kind: domain.KindDoctor, ID: id})
	}
	return targets, nil
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
