package appointment

import "github.com/BruksfildServices01/med-directory/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", httperr.ErrBadRequest("invalid_status", "Status must be one of PENDING, CONFIRMED, CANCELLED, COMPLETED")
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

func invalidState() error {
	return httperr.ErrBadRequest("invalid_state", "Appointment cannot change to this status")
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return invalidState()
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return invalidState()
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return invalidState()
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
