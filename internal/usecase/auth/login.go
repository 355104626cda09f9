package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/auth"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
)

type Login struct {
	users  domain.UserRepository
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewLogin(
	users domain.UserRepository,
	secret string,
	ttl time.Duration,
) *Login {
	return &Login{
		users:  users,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func errInvalidCredentials() error {
	return httperr.ErrUnauthorized("invalid_credentials", "Invalid email or password")
}

// Execute returns a signed access token. Unknown e-mail and wrong password
// produce the same error.
func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (string, error) {

	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", errInvalidCredentials()
		}
		return "", httperr.Wrap(err, httperr.BusinessError{
			Kind:    httperr.KindBadRequest,
			Code:    "login_failed",
			Message: "Failed to log in",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidCredentials()
	}

	token, err := domain.IssueToken(uc.secret, uc.ttl, uc.now(), domain.Claims{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return "", httperr.Wrap(err, httperr.BusinessError{
			Kind:    httperr.KindBadRequest,
			Code:    "token_generation_failed",
			Message: "Failed to generate token",
		})
	}

	return token, nil
}
