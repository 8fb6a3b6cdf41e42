package order

import (
	"strings"

	"github.com/restaurant/backend/internal/domain/shared"
)

// Status is the kitchen state of an order.
//
// The intended flow is Pending -> Preparing -> Ready -> Delivered, with
// Cancelled reachable from any non-terminal state. The flow is advisory:
// ChangeStatus accepts any member of the enumeration.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Statuses returns all statuses in lifecycle order
func Statuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}
}

// IsValid reports whether s is a member of the enumeration
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the lifecycle
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// String implements fmt.Stringer
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a status name
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if s == "" {
		return "", shared.NewValidationError("status", "Status is required")
	}
	if !s.IsValid() {
		return "", shared.NewValidationError("status", "Invalid order status")
	}
	return s, nil
}
