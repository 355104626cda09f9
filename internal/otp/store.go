// Package otp holds one-time passcodes keyed by e-mail.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// ErrNotFound is returned by Store.Get when no code is pending.
var ErrNotFound = errors.New("otp: record not found")

type Record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Store keeps at most one record per e-mail. Put overwrites.
type Store interface {
	Put(ctx context.Context, email string, rec Record) error
	Get(ctx context.Context, email string) (Record, error)
	Delete(ctx context.Context, email string) error
}

// GenerateCode returns a uniformly random six digit code in 100000-999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
