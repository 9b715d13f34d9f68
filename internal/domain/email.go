package domain

import "time"

// EmailRecord is a collected email address. Records are append-only; the
// service never updates or deletes them.
type EmailRecord struct {
	ID         string
	Email      string
	ReceivedAt time.Time
}
