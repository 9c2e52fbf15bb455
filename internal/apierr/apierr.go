package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and a stable machine code alongside the
// wrapped cause. Handlers render the code and message; the cause stays
// server-side for 500s.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

const (
	CodeUnauthenticated    = "unauthenticated"
	CodeForbidden          = "forbidden"
	CodeInvalidID          = "invalid_id"
	CodeBadRequest         = "bad_request"
	CodeDuplicateAgreement = "duplicate_agreement"
	CodeApartmentOccupied  = "apartment_occupied"
	CodeNotFound           = "not_found"
	CodeStoreUnavailable   = "store_unavailable"
)

// Missing credential. Distinct from Forbidden on purpose: absence of a
// token is 401, a rejected token is 403.
func Unauthenticated(msg string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, errors.New(msg))
}

func Forbidden(msg string) *Error {
	return New(http.StatusForbidden, CodeForbidden, errors.New(msg))
}

func InvalidID(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidID, errors.New(msg))
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, errors.New(msg))
}

func DuplicateAgreement(msg string) *Error {
	return New(http.StatusBadRequest, CodeDuplicateAgreement, errors.New(msg))
}

func ApartmentOccupied(msg string) *Error {
	return New(http.StatusBadRequest, CodeApartmentOccupied, errors.New(msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CodeNotFound, errors.New(msg))
}

// StoreUnavailable wraps infrastructure failures. The cause is kept for
// logs; clients only ever see the generic code.
func StoreUnavailable(err error) *Error {
	return New(http.StatusInternalServerError, CodeStoreUnavailable, err)
}

// From extracts an *Error, or wraps unknown failures as StoreUnavailable so
// no raw infrastructure error reaches the transport layer.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return StoreUnavailable(err)
}
