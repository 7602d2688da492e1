package models

import "fmt"

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	// Resource is the entity kind, e.g. "group" or "user".
	Resource string

	// Key is the identifier that failed to resolve (ID, code, or email).
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// AuthorizationError indicates the requester lacks the privilege for an
// operation, such as removing another member without being the owner.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// ValidationError indicates a request that is well-formed but violates a
// domain rule, such as transferring ownership to a non-member.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
