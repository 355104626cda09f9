package auth

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/med-directory/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// FindByEmail returns ErrUserNotFound when no account matches.
	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	CreateUser(
		ctx context.Context,
		user *models.User,
	) error

	MarkEmailVerified(
		ctx context.Context,
		userID string,
		at time.Time,
	) error
}
