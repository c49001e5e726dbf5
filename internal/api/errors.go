package api

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes service-layer failures.
type ErrorCode string

const (
	// ErrCodeAuthFailed covers bad credentials, unverified accounts and
	// rejected one-time passwords. The message is deliberately vague so
	// callers cannot distinguish "wrong password" from "no such account".
	ErrCodeAuthFailed ErrorCode = "AUTH_FAILED"

	// ErrCodeNotFound indicates an unknown entity id was passed to a read
	// or update.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeDuplicateInvitation indicates an invitation already exists
	// for the (spot, user) pair.
	ErrCodeDuplicateInvitation ErrorCode = "DUPLICATE_INVITATION"

	// ErrCodeValidation indicates the request payload is malformed
	// (empty message, non-positive budget, oversized caption).
	ErrCodeValidation ErrorCode = "VALIDATION"
)

// Error is the structured failure returned by every service operation.
// Entity and ID are set when the failure concerns a specific record.
type Error struct {
	Code    ErrorCode
	Message string
	Entity  string
	ID      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Entity != "" && e.ID != "" {
		return fmt.Sprintf("%s: %s (%s=%s)", e.Code, e.Message, e.Entity, e.ID)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Entity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAuthError creates an AUTH_FAILED error with the canonical message.
func NewAuthError() *Error {
	return &Error{Code: ErrCodeAuthFailed, Message: "invalid credentials or unverified"}
}

// NewNotFoundError creates a NOT_FOUND error for an entity id.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: entity + " not found", Entity: entity, ID: id}
}

// NewDuplicateInvitationError creates a DUPLICATE_INVITATION error.
func NewDuplicateInvitationError(spotID, userID string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateInvitation,
		Message: fmt.Sprintf("user %s is already invited to spot %s", userID, spotID),
		Entity:  "invitation",
	}
}

// NewValidationError creates a VALIDATION error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// codeIs reports whether err is (or wraps) an *Error with the given code.
func codeIs(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsAuthFailed reports whether err is an authentication failure.
func IsAuthFailed(err error) bool { return codeIs(err, ErrCodeAuthFailed) }

// IsNotFound reports whether err is an unknown-entity failure.
func IsNotFound(err error) bool { return codeIs(err, ErrCodeNotFound) }

// IsDuplicateInvitation reports whether err is a duplicate invite.
func IsDuplicateInvitation(err error) bool { return codeIs(err, ErrCodeDuplicateInvitation) }

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool { return codeIs(err, ErrCodeValidation) }
