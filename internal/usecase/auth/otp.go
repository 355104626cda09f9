package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/auth"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/mail"
	"github.com/BruksfildServices01/med-directory/internal/metrics"
	"github.com/BruksfildServices01/med-directory/internal/otp"
)

// ======================================================
// SEND
// ======================================================

type SendOTP struct {
	users  domain.UserRepository
	store  otp.Store
	sender mail.Sender
	ttl    time.Duration
	now    func() time.Time
	code   func() (string, error)
}

func NewSendOTP(
	users domain.UserRepository,
	store otp.Store,
	sender mail.Sender,
	ttl time.Duration,
) *SendOTP {
	return &SendOTP{
		users:  users,
		store:  store,
		sender: sender,
		ttl:    ttl,
		now:    time.Now,
		code:   otp.GenerateCode,
	}
}

var errOTPSendFailed = httperr.BusinessError{
	Kind:    httperr.KindBadRequest,
	Code:    "otp_send_failed",
	Message: "Failed to send OTP",
}

// Execute stores a fresh code for email, replacing any pending one, and
// mails it. The stored code survives a delivery failure.
func (uc *SendOTP) Execute(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if _, err := uc.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return httperr.ErrNotFound("user_not_found", "User not found")
		}
		return httperr.Wrap(err, errOTPSendFailed)
	}

	code, err := uc.code()
	if err != nil {
		return httperr.Wrap(err, errOTPSendFailed)
	}

	rec := otp.Record{
		Code:      code,
		ExpiresAt: uc.now().Add(uc.ttl),
	}
	if err := uc.store.Put(ctx, email, rec); err != nil {
		return httperr.Wrap(err, errOTPSendFailed)
	}

	if err := uc.sender.Send(ctx, email, "Your verification code", mail.OTPBody(code, uc.ttl)); err != nil {
		metrics.OTPSentTotal.WithLabelValues("failed").Inc()
		slog.Default().Warn("otp delivery failed", "email", email, "error", err)
		return httperr.ErrDeliveryFailed("otp_delivery_failed", "Failed to send OTP")
	}

	metrics.OTPSentTotal.WithLabelValues("ok").Inc()
	return nil
}

// ======================================================
// VERIFY
// ======================================================

type VerifyOTP struct {
	users domain.UserRepository
	store otp.Store
	now   func() time.Time
}

func NewVerifyOTP(
	users domain.UserRepository,
	store otp.Store,
) *VerifyOTP {
	return &VerifyOTP{
		users: users,
		store: store,
		now:   time.Now,
	}
}

var errOTPVerifyFailed = httperr.BusinessError{
	Kind:    httperr.KindBadRequest,
	Code:    "otp_verify_failed",
	Message: "Failed to verify OTP",
}

// Execute consumes the pending code. A wrong or expired code leaves the
// record in place.
func (uc *VerifyOTP) Execute(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	rec, err := uc.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			metrics.OTPVerifyTotal.WithLabelValues("missing").Inc()
			return httperr.ErrNotFound("otp_not_found", "No OTP found")
		}
		return httperr.Wrap(err, errOTPVerifyFailed)
	}

	now := uc.now()
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 || rec.Expired(now) {
		metrics.OTPVerifyTotal.WithLabelValues("invalid").Inc()
		return httperr.ErrInvalid("otp_invalid", "Invalid or expired OTP")
	}

	if err := uc.store.Delete(ctx, email); err != nil {
		return httperr.Wrap(err, errOTPVerifyFailed)
	}
	metrics.OTPVerifyTotal.WithLabelValues("ok").Inc()

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		slog.Default().Warn("verified otp for unknown user", "email", email, "error", err)
		return nil
	}
	if err := uc.users.MarkEmailVerified(ctx, user.ID, now); err != nil {
		slog.Default().Warn("mark email verified failed", "user_id", user.ID, "error", err)
	}

	return nil
}
