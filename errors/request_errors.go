// errors/request_errors.go
package errors

import "errors"

var (
	ErrRequestNotFound        = errors.New("data request not found")
	ErrInvalidRequestData     = errors.New("invalid data request")
	ErrSupervisorNotApproved  = errors.New("supervisor approval is required")
	ErrInvalidStatusChange    = errors.New("invalid status change")
	ErrUpstreamUnavailable    = errors.New("upstream service unavailable")
	ErrInternalServer         = errors.New("internal server error")
	ErrInvalidReferenceLookup = errors.New("unknown reference id")
)
