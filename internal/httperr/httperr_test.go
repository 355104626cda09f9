package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err, BusinessError{Kind: KindBadRequest, Code: "clinic_create_failed", Message: "Failed to create clinic"})

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondKeepsBusinessErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{EntityNotFound("clinic", "c1"), http.StatusNotFound, "clinic_not_found"},
		{ErrConflict("review_exists", "already reviewed"), http.StatusConflict, "review_exists"},
		{ErrUnauthorized("invalid_credentials", "Invalid credentials"), http.StatusUnauthorized, "invalid_credentials"},
		{ErrForbidden("forbidden", "nope"), http.StatusForbidden, "forbidden"},
		{ErrInvalid("otp_invalid", "bad code"), http.StatusBadRequest, "otp_invalid"},
		{ErrDeliveryFailed("otp_delivery_failed", "smtp down"), http.StatusBadRequest, "otp_delivery_failed"},
		{fmt.Errorf("wrapped: %w", ErrConflict("slot_taken", "")), http.StatusConflict, "slot_taken"},
	}

	for _, tc := range cases {
		w, body := respond(t, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestRespondWrapsUnknownErrors(t *testing.T) {
	w, body := respond(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "clinic_create_failed", body.Code)
	assert.NotContains(t, body.Message, "connection reset")
}

func TestWrap(t *testing.T) {
	fallback := BusinessError{Kind: KindBadRequest, Code: "x_failed"}

	assert.NoError(t, Wrap(nil, fallback))
	assert.Equal(t, fallback, Wrap(errors.New("boom"), fallback))

	nf := EntityNotFound("doctor", "d1")
	assert.Equal(t, nf, Wrap(nf, fallback))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(EntityNotFound("review", "r1"), KindNotFound))
	assert.False(t, IsKind(errors.New("x"), KindNotFound))
	assert.True(t, IsBusiness(ErrBusiness("invalid_state"), "invalid_state"))
}
