package review

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/med-directory/internal/audit"
	domain "github.com/BruksfildServices01/med-directory/internal/domain/review"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/metrics"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	UserID   string
	Rating   int
	Comment  string
	ClinicID *string
	DoctorID *string
}

// UpdateInput carries only the fields being changed.
type UpdateInput struct {
	Rating   *int
	Comment  *string
	ClinicID *string
	DoctorID *string
}

// ======================================================
// USE CASE
// ======================================================

// Aggregator writes reviews and keeps clinic and doctor ratings equal to the
// mean of their reviews. Every mutation and its recomputes share one
// transaction.
type Aggregator struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAggregator(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Aggregator {
	return &Aggregator{
		repo:  repo,
		audit: audit,
	}
}

func failure(op string) httperr.BusinessError {
	return httperr.BusinessError{
		Kind:    httperr.KindBadRequest,
		Code:    "review_" + op + "_failed",
		Message: "Failed to " + op + " review",
	}
}

var errReviewExists = httperr.ErrConflict("review_exists", "You already reviewed this")

func samePtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameTarget(a, b *models.Review) bool {
	return samePtr(a.ClinicID, b.ClinicID) && samePtr(a.DoctorID, b.DoctorID)
}

func recompute(
	ctx context.Context,
	tx domain.Repository,
	targets []domain.Target,
) error {

	for _, t := range targets {
		avg, err := tx.AverageRating(ctx, t)
		if err != nil {
			return err
		}
		if err := tx.SetRating(ctx, t, avg); err != nil {
			return err
		}
		metrics.RatingRecomputationsTotal.WithLabelValues(string(t.Kind)).Inc()
	}
	return nil
}

// ======================================================
// CREATE
// ======================================================

func (uc *Aggregator) Create(
	ctx context.Context,
	in CreateInput,
) (*models.Review, error) {

	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	exists, err := uc.repo.ExistsForTarget(ctx, in.UserID, in.ClinicID, in.DoctorID, "")
	if err != nil {
		return nil, httperr.Wrap(err, failure("create"))
	}
	if exists {
		return nil, errReviewExists
	}

	r := &models.Review{
		UserID:   in.UserID,
		Rating:   in.Rating,
		Comment:  in.Comment,
		ClinicID: in.ClinicID,
		DoctorID: in.DoctorID,
	}

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.CreateReview(ctx, r); err != nil {
			return err
		}
		return recompute(ctx, tx, domain.TargetsOf(r))
	})
	if err != nil {
		return nil, httperr.Wrap(err, failure("create"))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(in.UserID),
		Action:   audit.ActionReviewCreated,
		Entity:   "review",
		EntityID: audit.StringPtr(r.ID),
		Metadata: map[string]any{"rating": r.Rating},
	})

	return r, nil
}

// ======================================================
// UPDATE
// ======================================================

func (uc *Aggregator) Update(
	ctx context.Context,
	actorID string,
	id string,
	in UpdateInput,
) (*models.Review, error) {

	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
	}

	var updated *models.Review

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.GetReview(ctx, id)
		if err != nil {
			return err
		}
		before := *r

		if in.Rating != nil {
			r.Rating = *in.Rating
		}
		if in.Comment != nil {
			r.Comment = *in.Comment
		}
		if in.ClinicID != nil {
			r.ClinicID = in.ClinicID
		}
		if in.DoctorID != nil {
			r.DoctorID = in.DoctorID
		}

		if !sameTarget(&before, r) {
			taken, err := tx.ExistsForTarget(ctx, r.UserID, r.ClinicID, r.DoctorID, r.ID)
			if err != nil {
				return err
			}
			if taken {
				return errReviewExists
			}
		}

		if err := tx.UpdateReview(ctx, r); err != nil {
			return err
		}
		if err := recompute(ctx, tx, domain.TargetsOf(&before, r)); err != nil {
			return err
		}

		updated = r
		return nil
	})
	if err != nil {
		return nil, httperr.Wrap(err, failure("update"))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   audit.ActionReviewUpdated,
		Entity:   "review",
		EntityID: audit.StringPtr(id),
	})

	return updated, nil
}

// ======================================================
// DELETE
// ======================================================

func (uc *Aggregator) Delete(
	ctx context.Context,
	actorID string,
	id string,
) error {

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.GetReview(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteReview(ctx, id); err != nil {
			return err
		}
		return recompute(ctx, tx, domain.TargetsOf(r))
	})
	if err != nil {
		return httperr.Wrap(err, failure("delete"))
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   audit.ActionReviewDeleted,
		Entity:   "review",
		EntityID: audit.StringPtr(id),
	})

	return nil
}

// ======================================================
// DELETE USER
// ======================================================

// DeleteUser removes a user and their reviews, recomputing every clinic and
// doctor those reviews rated in the same transaction.
func (uc *Aggregator) DeleteUser(
	ctx context.Context,
	actorID string,
	userID string,
) error {

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		reviews, err := tx.ReviewsByUser(ctx, userID)
		if err != nil {
			return err
		}

		rated := make([]*models.Review, len(reviews))
		for i := range reviews {
			rated[i] = &reviews[i]
		}

		if err := tx.DeleteAuthor(ctx, userID); err != nil {
			return err
		}
		return recompute(ctx, tx, domain.TargetsOf(rated...))
	})
	if err != nil {
		return httperr.Wrap(err, httperr.BusinessError{
			Kind:    httperr.KindBadRequest,
			Code:    "user_delete_failed",
			Message: "Failed to delete user",
		})
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   audit.ActionUserDeleted,
		Entity:   "user",
		EntityID: audit.StringPtr(userID),
	})

	return nil
}

// ======================================================
// RECONCILE
// ======================================================

// Reconcile recomputes every clinic and doctor rating, one transaction per
// target. Ratings left stale by concurrent writers converge here.
func (uc *Aggregator) Reconcile(ctx context.Context) (int, error) {
	targets, err := uc.repo.RatedTargets(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return fixed, err
		}

		err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
			return recompute(ctx, tx, []domain.Target{t})
		})
		if err != nil {
			slog.Default().Error("rating reconcile failed", "kind", t.Kind, "id", t.ID, "error", err)
			continue
		}
		fixed++
	}

	return fixed, nil
}
