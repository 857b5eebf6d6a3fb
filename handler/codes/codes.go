package codes

import (
	"errors"
	"net/http"

	"llamalend/core"
)

const (
	// InvalidArguments malformed request
	InvalidArguments = 400001
	// NotFound unknown route or resource
	NotFound = 404001
	// Internal unexpected failure
	Internal = 500001
)

// Of http status and response code of err. Domain errors keep their own
// code; anything else is internal.
func Of(err error) (int, int) {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		return http.StatusInternalServerError, Internal
	}

	switch code {
	case core.ErrLoanNotFound:
		return http.StatusNotFound, int(code)
	case core.ErrUnknown:
		return http.StatusInternalServerError, int(code)
	default:
		return http.StatusBadRequest, int(code)
	}
}
