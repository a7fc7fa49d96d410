// Package apperr holds the error kinds shared by the ledger, the gateway
// bridge, reporting and the identity layer. Callers wrap them with
// fmt.Errorf("%w: ...") and the HTTP layer maps them to status codes.
package apperr

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
)
