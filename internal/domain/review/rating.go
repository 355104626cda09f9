package review

import (
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Kind string

const (
	KindClinic Kind = "clinic"
	KindDoctor Kind = "doctor"
)

// Target is a clinic or doctor whose rating derives from reviews.
type Target struct {
	Kind Kind
	ID   string
}

// TargetsOf returns the distinct targets referenced by the given reviews,
// clinics before doctors.
func TargetsOf(reviews ...*models.Review) []Target {
	seen := map[Target]bool{}
	var clinics, doctors []Target

	for _, r := range reviews {
		if r == nil {
			continue
		}
		if r.ClinicID != nil {
			t := Target{Kind: KindClinic, ID: *r.ClinicID}
			if !seen[t] {
				seen[t] = true
				clinics = append(clinics, t)
			}
		}
		if r.DoctorID != nil {
			t := Target{Kind: KindDoctor, ID: *r.DoctorID}
			if !seen[t] {
				seen[t] = true
				doctors = append(doctors, t)
			}
		}
	}

	return append(clinics, doctors...)
}

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return httperr.ErrBadRequest("invalid_rating", "Rating must be between 1 and 5")
	}
	return nil
}
