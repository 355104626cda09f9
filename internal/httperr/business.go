package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a BusinessError and decides its HTTP status.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindBadRequest     Kind = "bad_request"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindInvalid        Kind = "invalid"
	KindDeliveryFailed Kind = "delivery_failed"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// ErrBusiness builds a BadRequest error with only a code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBadRequest, Code: code}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrBadRequest(code, message string) error {
	return BusinessError{Kind: KindBadRequest, Code: code, Message: message}
}

func ErrUnauthorized(code, message string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrInvalid(code, message string) error {
	return BusinessError{Kind: KindInvalid, Code: code, Message: message}
}

func ErrDeliveryFailed(code, message string) error {
	return BusinessError{Kind: KindDeliveryFailed, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsKind reports whether err is a BusinessError of the given kind.
func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// EntityNotFound is the shared "<entity> with id <id> not found" error.
func EntityNotFound(entity, id string) error {
	return ErrNotFound(
		entity+"_not_found",
		fmt.Sprintf("%s with id %s not found", entity, id),
	)
}
