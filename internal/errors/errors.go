// Package errors defines the closed set of failures the transfer endpoint can
// report and the HTTP status each one maps to.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies a DomainError.
type Kind int

const (
	KindSchemaInvalid Kind = iota + 1
	KindNotFound
	KindValidatorUnavailable
	KindStorageFailure
)

func (k Kind) String() string {
	switch k {
	case KindSchemaInvalid:
		return "schema_invalid"
	case KindNotFound:
		return "not_found"
	case KindValidatorUnavailable:
		return "validator_unavailable"
	case KindStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code for the kind.
// NotFound is an expected outcome and is reported with a 200.
func (k Kind) Status() int {
	switch k {
	case KindSchemaInvalid:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// DomainError carries a Kind, a stable code and the underlying cause.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel DomainErrors work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel values, usable as errors.Is targets.
var (
	ErrSchemaInvalid = &DomainError{
		Kind:    KindSchemaInvalid,
		Code:    "SCHEMA_INVALID",
		Message: "request body failed validation",
	}
	ErrTransferNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "TRANSFER_NOT_FOUND",
		Message: "transfer not found",
	}
	ErrValidatorUnavailable = &DomainError{
		Kind:    KindValidatorUnavailable,
		Code:    "VALIDATOR_UNAVAILABLE",
		Message: "transfer validator failed",
	}
	ErrStorageFailure = &DomainError{
		Kind:    KindStorageFailure,
		Code:    "STORAGE_FAILURE",
		Message: "failed to store confirmation document",
	}
)

// Wrap returns a copy of the sentinel with err as its cause.
func Wrap(sentinel *DomainError, err error) *DomainError {
	return &DomainError{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}

// KindOf reports the Kind of err, or 0 when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// StatusOf maps err to an HTTP status. Anything outside the taxonomy is a 500.
func StatusOf(err error) int {
	if k := KindOf(err); k != 0 {
		return k.Status()
	}
	return http.StatusInternalServerError
}
