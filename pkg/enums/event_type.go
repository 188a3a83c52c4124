package enums

import "fmt"

// EventType names the CartPanda webhook notifications this service
// accepts.
type EventType string

const (
	EventTypeSaleApproved  EventType = "sale.approved"
	EventTypeSaleRefunded  EventType = "sale.refunded"
	EventTypeSaleCancelled EventType = "sale.cancelled"
)

var validEventTypes = []EventType{
	EventTypeSaleApproved,
	EventTypeSaleRefunded,
	EventTypeSaleCancelled,
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventType.
func (e EventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
