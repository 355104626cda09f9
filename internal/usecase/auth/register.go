package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/auth"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name      string
	Surname   string
	Phone     string
	Email     string
	Password  string
	AvatarURL string
	RegionID  *string

	// Role defaults to USER. Any other role needs an ADMIN CallerRole.
	Role       string
	CallerRole string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	users       domain.UserRepository
	cost        int
	domainCheck func(email string) bool
}

// NewRegister builds the use case. domainCheck may be nil.
func NewRegister(
	users domain.UserRepository,
	cost int,
	domainCheck func(email string) bool,
) *Register {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Register{
		users:       users,
		cost:        cost,
		domainCheck: domainCheck,
	}
}

var errRegisterFailed = httperr.BusinessError{
	Kind:    httperr.KindBadRequest,
	Code:    "register_failed",
	Message: "Failed to register user",
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func roleFor(in RegisterInput) (string, error) {
	switch in.Role {
	case "", models.RoleUser:
		return models.RoleUser, nil
	case models.RoleAdmin:
		if in.CallerRole != models.RoleAdmin {
			return "", httperr.ErrForbidden("role_not_allowed", "Only an admin can assign this role")
		}
		return models.RoleAdmin, nil
	}
	return "", httperr.ErrBadRequest("invalid_role", "Role must be USER or ADMIN")
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (string, error) {

	role, err := roleFor(in)
	if err != nil {
		return "", err
	}

	email := normalizeEmail(in.Email)

	if uc.domainCheck != nil && !uc.domainCheck(email) {
		return "", httperr.ErrBadRequest("invalid_email_domain", "E-mail domain does not accept mail")
	}

	_, err = uc.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", httperr.ErrConflict("user_already_exists", "User already exists")
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", httperr.Wrap(err, errRegisterFailed)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return "", httperr.Wrap(err, errRegisterFailed)
	}

	user := &models.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Phone:        in.Phone,
		Email:        email,
		PasswordHash: string(hashed),
		AvatarURL:    in.AvatarURL,
		Role:         role,
		RegionID:     in.RegionID,
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		if httperr.IsUniqueViolation(err) {
			return "", httperr.ErrConflict("user_already_exists", "User already exists")
		}
		return "", httperr.Wrap(err, errRegisterFailed)
	}

	return user.ID, nil
}
