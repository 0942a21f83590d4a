package models

import (
	"errors"
	"fmt"
)

// ErrMemberNotFound is returned when no member exists for the requested id
var ErrMemberNotFound = errors.New("member not found")

// NotFoundMessage renders the not-found text shared by both transports
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("Member not found with id: %d", id)
}

// NewMemberNotFoundError wraps ErrMemberNotFound with the offending id
func NewMemberNotFoundError(id int64) error {
	return fmt.Errorf("%w: %s", ErrMemberNotFound, NotFoundMessage(id))
}
