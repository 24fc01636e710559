package credentials

import "time"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusLocked   Status = "LOCKED"
	StatusDisabled Status = "DISABLED"
)

// Credential binds a lowercased email to a password digest and account
// status. It exists only for the LOCAL provider path; Google-authenticated
// users never get one. UserID references the remote profile owned by the
// user directory and is not enforced locally.
type Credential struct {
	ID           string
	UserID       string
	Email        string
	PasswordHash string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
