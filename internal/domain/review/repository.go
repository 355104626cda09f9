package review

import (
	"context"

	"github.com/BruksfildServices01/med-directory/internal/models"
)

// Repository is the narrow store used by the rating aggregator.
type Repository interface {
	// WithinTx runs fn against a repository bound to a single transaction.
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Reviews --------
	// ExistsForTarget reports another review by userID on exactly this
	// clinic/doctor pair, ignoring excludeID.
	ExistsForTarget(
		ctx context.Context,
		userID string,
		clinicID *string,
		doctorID *string,
		excludeID string,
	) (bool, error)

	GetReview(
		ctx context.Context,
		id string,
	) (*models.Review, error)

	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	UpdateReview(
		ctx context.Context,
		r *models.Review,
	) error

	DeleteReview(
		ctx context.Context,
		id string,
	) error

	// -------- Authors --------
	ReviewsByUser(
		ctx context.Context,
		userID string,
	) ([]models.Review, error)

	// DeleteAuthor removes the user together with their reviews.
	DeleteAuthor(
		ctx context.Context,
		userID string,
	) error

	// -------- Ratings --------
	AverageRating(
		ctx context.Context,
		target Target,
	) (float64, error)

	SetRating(
		ctx context.Context,
		target Target,
		rating float64,
	) error

	// RatedTargets lists every clinic and doctor that can carry a rating.
	RatedTargets(
		ctx context.Context,
	) ([]Target, error)
}
