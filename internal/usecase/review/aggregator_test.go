package review

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/med-directory/internal/dbtest"
	domain "github.com/BruksfildServices01/med-directory/internal/domain/review"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/infra/repository"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

// ------------------------------------------------------
// fake repository
// ------------------------------------------------------

type memoryRepo struct {
	reviews map[string]models.Review
	ratings map[domain.Target]float64

	failSetRating bool
	missingUsers  map[string]bool
}

func newMemoryRepo(targets ...domain.Target) *memoryRepo {
	m := &memoryRepo{
		reviews: map[string]models.Review{},
		ratings: map[domain.Target]float64{},
	}
	for _, t := range targets {
		m.ratings[t] = 0
	}
	return m
}

func (m *memoryRepo) WithinTx(_ context.Context, fn func(domain.Repository) error) error {
	reviews := make(map[string]models.Review, len(m.reviews))
	for k, v := range m.reviews {
		reviews[k] = v
	}
	ratings := make(map[domain.Target]float64, len(m.ratings))
	for k, v := range m.ratings {
		ratings[k] = v
	}

	if err := fn(m); err != nil {
		m.reviews, m.ratings = reviews, ratings
		return err
	}
	return nil
}

func eqPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *memoryRepo) ExistsForTarget(_ context.Context, userID string, clinicID, doctorID *string, excludeID string) (bool, error) {
	for _, r := range m.reviews {
		if r.ID != excludeID && r.UserID == userID && eqPtr(r.ClinicID, clinicID) && eqPtr(r.DoctorID, doctorID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) GetReview(_ context.Context, id string) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, httperr.EntityNotFound("review", id)
	}
	return &r, nil
}

func (m *memoryRepo) CreateReview(_ context.Context, r *models.Review) error {
	r.ID = uuid.NewString()
	m.reviews[r.ID] = *r
	return nil
}

func (m *memoryRepo) UpdateReview(_ context.Context, r *models.Review) error {
	m.reviews[r.ID] = *r
	return nil
}

func (m *memoryRepo) DeleteReview(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return httperr.EntityNotFound("review", id)
	}
	delete(m.reviews, id)
	return nil
}

func (m *memoryRepo) ReviewsByUser(_ context.Context, userID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepo) DeleteAuthor(_ context.Context, userID string) error {
	if m.missingUsers[userID] {
		return httperr.EntityNotFound("user", userID)
	}
	for id, r := range m.reviews {
		if r.UserID == userID {
			delete(m.reviews, id)
		}
	}
	return nil
}

func (m *memoryRepo) AverageRating(_ context.Context, t domain.Target) (float64, error) {
	var ratings []int
	for _, r := range m.reviews {
		id := r.ClinicID
		if t.Kind == domain.KindDoctor {
			id = r.DoctorID
		}
		if id != nil && *id == t.ID {
			ratings = append(ratings, r.Rating)
		}
	}
	return mean(ratings), nil
}

func (m *memoryRepo) SetRating(_ context.Context, t domain.Target, rating float64) error {
	if m.failSetRating {
		return errors.New("write failed")
	}
	m.ratings[t] = rating
	return nil
}

func (m *memoryRepo) RatedTargets(context.Context) ([]domain.Target, error) {
	out := make([]domain.Target, 0, len(m.ratings))
	for t := range m.ratings {
		out = append(out, t)
	}
	return out, nil
}

// mean mirrors the AVG the database computes: 0 for no reviews.
func mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

func ptr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

var (
	clinicC1 = domain.Target{Kind: domain.KindClinic, ID: "c1"}
	doctorD1 = domain.Target{Kind: domain.KindDoctor, ID: "d1"}
	doctorD2 = domain.Target{Kind: domain.KindDoctor, ID: "d2"}
)

// ------------------------------------------------------
// unit tests
// ------------------------------------------------------

func TestCreateUpdateDeleteKeepsMean(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(clinicC1)
	uc := NewAggregator(repo, nil)

	r1, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 5, ClinicID: ptr("c1")})
	require.NoError(t, err)
	assert.Equal(t, 5.0, repo.ratings[clinicC1])

	_, err = uc.Create(ctx, CreateInput{UserID: "u2", Rating: 1, ClinicID: ptr("c1")})
	require.NoError(t, err)
	assert.Equal(t, 3.0, repo.ratings[clinicC1])

	_, err = uc.Update(ctx, "admin", r1.ID, UpdateInput{Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 2.5, repo.ratings[clinicC1])

	require.NoError(t, uc.Delete(ctx, "admin", r1.ID))
	assert.Equal(t, 1.0, repo.ratings[clinicC1])
}

func TestDeleteLastReviewResetsToZero(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(doctorD1)
	uc := NewAggregator(repo, nil)

	r, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 4, DoctorID: ptr("d1")})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, "u1", r.ID))

	assert.Equal(t, 0.0, repo.ratings[doctorD1])
}

func TestCreateDuplicateConflicts(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(clinicC1, doctorD1)
	uc := NewAggregator(repo, nil)

	_, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 5, ClinicID: ptr("c1"), DoctorID: ptr("d1")})
	require.NoError(t, err)

	_, err = uc.Create(ctx, CreateInput{UserID: "u1", Rating: 2, ClinicID: ptr("c1"), DoctorID: ptr("d1")})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Len(t, repo.reviews, 1)

	_, err = uc.Create(ctx, CreateInput{UserID: "u1", Rating: 2, ClinicID: ptr("c1")})
	assert.NoError(t, err, "clinic-only review is a different target triple")
}

func TestUpdateMovingDoctorRecomputesBoth(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(doctorD1, doctorD2)
	uc := NewAggregator(repo, nil)

	r, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 5, DoctorID: ptr("d1")})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "u1", r.ID, UpdateInput{DoctorID: ptr("d2")})
	require.NoError(t, err)

	assert.Equal(t, 0.0, repo.ratings[doctorD1])
	assert.Equal(t, 5.0, repo.ratings[doctorD2])
}

func TestUpdateOntoExistingTargetConflicts(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(doctorD1, doctorD2)
	uc := NewAggregator(repo, nil)

	_, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 5, DoctorID: ptr("d1")})
	require.NoError(t, err)
	second, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 2, DoctorID: ptr("d2")})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "u1", second.ID, UpdateInput{DoctorID: ptr("d1")})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "review_exists"))

	assert.Equal(t, ptr("d2"), repo.reviews[second.ID].DoctorID)
	assert.Equal(t, 5.0, repo.ratings[doctorD1])
	assert.Equal(t, 2.0, repo.ratings[doctorD2])

	_, err = uc.Update(ctx, "u1", second.ID, UpdateInput{DoctorID: ptr("d2"), Rating: intPtr(3)})
	assert.NoError(t, err, "keeping its own target is not a duplicate")
}

func TestMissingReviewIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc := NewAggregator(newMemoryRepo(), nil)

	_, err := uc.Update(ctx, "u1", "nope", UpdateInput{Rating: intPtr(3)})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	err = uc.Delete(ctx, "u1", "nope")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestRecomputeFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(clinicC1)
	repo.failSetRating = true
	uc := NewAggregator(repo, nil)

	_, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 5, ClinicID: ptr("c1")})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "review_create_failed"))
	assert.Empty(t, repo.reviews)
}

func TestInvalidRatingRejected(t *testing.T) {
	uc := NewAggregator(newMemoryRepo(), nil)

	_, err := uc.Create(context.Background(), CreateInput{UserID: "u1", Rating: 9})
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))
}

func TestReconcileRepairsDrift(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(clinicC1, doctorD1)
	uc := NewAggregator(repo, nil)

	_, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 4, ClinicID: ptr("c1")})
	require.NoError(t, err)

	repo.ratings[clinicC1] = 1.5
	repo.ratings[doctorD1] = 3

	fixed, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fixed)
	assert.Equal(t, 4.0, repo.ratings[clinicC1])
	assert.Equal(t, 0.0, repo.ratings[doctorD1])
}

func TestDeleteUserRecomputesRatedTargets(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(clinicC1, doctorD1)
	uc := NewAggregator(repo, nil)

	_, err := uc.Create(ctx, CreateInput{UserID: "u1", Rating: 5, ClinicID: ptr("c1"), DoctorID: ptr("d1")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, CreateInput{UserID: "u2", Rating: 1, ClinicID: ptr("c1")})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(ctx, "admin", "u1"))

	assert.Len(t, repo.reviews, 1)
	assert.Equal(t, 1.0, repo.ratings[clinicC1])
	assert.Equal(t, 0.0, repo.ratings[doctorD1])
}

func TestDeleteMissingUserIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	repo.missingUsers = map[string]bool{"ghost": true}

	err := NewAggregator(repo, nil).DeleteUser(context.Background(), "admin", "ghost")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

// ------------------------------------------------------
// sqlite
// ------------------------------------------------------

func TestRatingScenarioOnDatabase(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	u1 := models.User{Name: "u1", Email: "u1@x.io", PasswordHash: "h"}
	u2 := models.User{Name: "u2", Email: "u2@x.io", PasswordHash: "h"}
	clinic := models.Clinic{Name: "c1"}
	require.NoError(t, db.Create(&u1).Error)
	require.NoError(t, db.Create(&u2).Error)
	require.NoError(t, db.Create(&clinic).Error)

	uc := NewAggregator(repository.NewReviewGormRepository(db), nil)

	rating := func() float64 {
		var c models.Clinic
		require.NoError(t, db.First(&c, "id = ?", clinic.ID).Error)
		return c.Rating
	}

	first, err := uc.Create(ctx, CreateInput{UserID: u1.ID, Rating: 5, ClinicID: &clinic.ID})
	require.NoError(t, err)
	assert.Equal(t, 5.0, rating())

	_, err = uc.Create(ctx, CreateInput{UserID: u2.ID, Rating: 1, ClinicID: &clinic.ID})
	require.NoError(t, err)
	assert.Equal(t, 3.0, rating())

	_, err = uc.Create(ctx, CreateInput{UserID: u1.ID, Rating: 2, ClinicID: &clinic.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, 3.0, rating())

	require.NoError(t, uc.Delete(ctx, u1.ID, first.ID))
	assert.Equal(t, 1.0, rating())

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteUserKeepsRatingsOnDatabase(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenWithForeignKeys(t)

	u1 := models.User{Name: "u1", Email: "u1@x.io", PasswordHash: "h"}
	u2 := models.User{Name: "u2", Email: "u2@x.io", PasswordHash: "h"}
	clinic := models.Clinic{Name: "c1"}
	require.NoError(t, db.Create(&u1).Error)
	require.NoError(t, db.Create(&u2).Error)
	require.NoError(t, db.Create(&clinic).Error)

	uc := NewAggregator(repository.NewReviewGormRepository(db), nil)

	_, err := uc.Create(ctx, CreateInput{UserID: u1.ID, Rating: 5, ClinicID: &clinic.ID})
	require.NoError(t, err)
	_, err = uc.Create(ctx, CreateInput{UserID: u2.ID, Rating: 1, ClinicID: &clinic.ID})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(ctx, "admin", u1.ID))

	var reviews int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	assert.Equal(t, int64(1), reviews)

	var stored models.Clinic
	require.NoError(t, db.First(&stored, "id = ?", clinic.ID).Error)
	assert.Equal(t, 1.0, stored.Rating)

	err = uc.DeleteUser(ctx, "admin", u1.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
