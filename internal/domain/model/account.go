package model

import "time"

// Account is a registered participant. Its identifier is the opaque caller
// identity attached to every marketplace operation; the core only ever
// compares it for equality.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
