package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxUsernameLength = 100

type Organizer struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (o *Organizer) Validate() error {
	if err := ValidateUsername(o.Username); err != nil {
		return err
	}
	if o.PasswordHash == "" {
		return validationError("password hash is required")
	}
	return nil
}

func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(username))
	if n == 0 {
		return validationError("username is required")
	}
	if n > MaxUsernameLength {
		return validationError("username must be at most %d characters", MaxUsernameLength)
	}
	return nil
}
