package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/auth"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/models"
	"github.com/BruksfildServices01/med-directory/internal/otp"
)

// ------------------------------------------------------
// fakes
// ------------------------------------------------------

type memoryUsers struct {
	mu       sync.Mutex
	byEmail  map[string]*models.User
	verified map[string]time.Time
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{
		byEmail:  map[string]*models.User{},
		verified: map[string]time.Time{},
	}
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memoryUsers) MarkEmailVerified(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verified[userID] = at
	return nil
}

type recordingSender struct {
	fail error
	last string
	sent int
}

func (s *recordingSender) Send(_ context.Context, to, _, _ string) error {
	s.sent++
	s.last = to
	return s.fail
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func register(t *testing.T, users *memoryUsers, email, password string) string {
	t.Helper()
	id, err := NewRegister(users, bcrypt.MinCost, nil).Execute(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return id
}

// ------------------------------------------------------
// register / login
// ------------------------------------------------------

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()

	id := register(t, users, "a@x.io", "p@ss1")
	assert.NotEmpty(t, id)

	stored, err := users.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NotEqual(t, "p@ss1", stored.PasswordHash)

	login := NewLogin(users, "secret", 24*time.Hour)

	_, err = login.Execute(ctx, "a@x.io", "wrong")
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))

	token, err := login.Execute(ctx, "a@x.io", "p@ss1")
	require.NoError(t, err)

	claims, err := domain.ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newMemoryUsers()
	register(t, users, "dup@x.io", "secret")

	_, err := NewRegister(users, bcrypt.MinCost, nil).Execute(context.Background(), RegisterInput{
		Email:    " DUP@x.io ",
		Password: "other",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

func TestRegisterRole(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	uc := NewRegister(users, bcrypt.MinCost, nil)

	_, err := uc.Execute(ctx, RegisterInput{Email: "self@x.io", Password: "secret", Role: models.RoleAdmin})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	_, err = uc.Execute(ctx, RegisterInput{Email: "odd@x.io", Password: "secret", Role: "ROOT", CallerRole: models.RoleAdmin})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	_, err = uc.Execute(ctx, RegisterInput{Email: "ops@x.io", Password: "secret", Role: models.RoleAdmin, CallerRole: models.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RegisterInput{Email: "plain@x.io", Password: "secret", Role: models.RoleUser})
	require.NoError(t, err)

	ops, err := users.FindByEmail(ctx, "ops@x.io")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, ops.Role)

	plain, err := users.FindByEmail(ctx, "plain@x.io")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, plain.Role)

	_, err = users.FindByEmail(ctx, "self@x.io")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterRejectsDomainWhenCheckFails(t *testing.T) {
	users := newMemoryUsers()
	uc := NewRegister(users, bcrypt.MinCost, func(string) bool { return false })

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "a@nowhere.invalid", Password: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	register(t, users, "known@x.io", "right")

	login := NewLogin(users, "secret", time.Hour)

	_, errUnknown := login.Execute(ctx, "unknown@x.io", "right")
	_, errWrong := login.Execute(ctx, "known@x.io", "wrong")

	require.Error(t, errUnknown)
	assert.Equal(t, errUnknown, errWrong)
}

// ------------------------------------------------------
// otp
// ------------------------------------------------------

type otpFixture struct {
	users  *memoryUsers
	store  *otp.MemoryStore
	sender *recordingSender
	clock  *clock
	send   *SendOTP
	verify *VerifyOTP
}

func newOTPFixture(t *testing.T) *otpFixture {
	t.Helper()

	f := &otpFixture{
		users:  newMemoryUsers(),
		store:  otp.NewMemoryStore(),
		sender: &recordingSender{},
		clock:  &clock{t: time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)},
	}
	register(t, f.users, "a@x.io", "secret")

	f.send = NewSendOTP(f.users, f.store, f.sender, 5*time.Minute)
	f.send.now = f.clock.Now
	f.send.code = func() (string, error) { return "123456", nil }

	f.verify = NewVerifyOTP(f.users, f.store)
	f.verify.now = f.clock.Now
	return f
}

func TestOTPSingleUse(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture(t)

	require.NoError(t, f.send.Execute(ctx, "a@x.io"))
	assert.Equal(t, 1, f.sender.sent)

	require.NoError(t, f.verify.Execute(ctx, "a@x.io", "123456"))

	err := f.verify.Execute(ctx, "a@x.io", "123456")
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	user, err := f.users.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Contains(t, f.users.verified, user.ID)
}

func TestOTPExpired(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture(t)

	require.NoError(t, f.send.Execute(ctx, "a@x.io"))

	f.clock.t = f.clock.t.Add(5*time.Minute + time.Second)

	err := f.verify.Execute(ctx, "a@x.io", "123456")
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalid))
}

func TestOTPValidAtExactExpiry(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture(t)

	require.NoError(t, f.send.Execute(ctx, "a@x.io"))
	f.clock.t = f.clock.t.Add(5 * time.Minute)

	assert.NoError(t, f.verify.Execute(ctx, "a@x.io", "123456"))
}

func TestOTPWrongCodeKeepsRecord(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture(t)

	require.NoError(t, f.send.Execute(ctx, "a@x.io"))

	err := f.verify.Execute(ctx, "a@x.io", "000000")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalid))

	assert.NoError(t, f.verify.Execute(ctx, "a@x.io", "123456"))
}

func TestOTPResendOverwrites(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture(t)

	require.NoError(t, f.send.Execute(ctx, "a@x.io"))

	f.send.code = func() (string, error) { return "654321", nil }
	require.NoError(t, f.send.Execute(ctx, "a@x.io"))

	assert.True(t, httperr.IsKind(f.verify.Execute(ctx, "a@x.io", "123456"), httperr.KindInvalid))
	assert.NoError(t, f.verify.Execute(ctx, "a@x.io", "654321"))
}

func TestSendOTPUnknownUser(t *testing.T) {
	f := newOTPFixture(t)

	err := f.send.Execute(context.Background(), "ghost@x.io")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	assert.Equal(t, 0, f.sender.sent)
}

func TestSendOTPDeliveryFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture(t)
	f.sender.fail = errors.New("smtp down")

	err := f.send.Execute(ctx, "a@x.io")
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindDeliveryFailed))

	rec, err := f.store.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "123456", rec.Code)
	assert.Equal(t, f.clock.t.Add(5*time.Minute), rec.ExpiresAt)
}

func TestVerifyWithoutSend(t *testing.T) {
	f := newOTPFixture(t)

	err := f.verify.Execute(context.Background(), "a@x.io", "123456")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
