package services

import (
	"errors"
	"log/slog"
	"net/http"

	"founderhub/hub/schema"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(err error, code int) error {
	return &codedError{err: err, code: code}
}

func GetResponseCode(err error) int {
	var cerr *codedError
	if errors.As(err, &cerr) {
		return cerr.code
	}
	slog.Error("non coded error passed to GetResponseCode", "error", err)
	return http.StatusInternalServerError
}

// notFoundOrInternal maps the schema sentinel errors onto response codes.
// Absent rows are the caller's problem, everything else is ours.
func notFoundOrInternal(err error) error {
	switch {
	case errors.Is(err, schema.ErrUserNotFound),
		errors.Is(err, schema.ErrRoadmapNotFound),
		errors.Is(err, schema.ErrMilestoneNotFound),
		errors.Is(err, schema.ErrPhaseNotFound),
		errors.Is(err, schema.ErrComplianceItemNotFound),
		errors.Is(err, schema.ErrFundingNotFound):
		return CodedError(err, http.StatusNotFound)
	default:
		return CodedError(err, http.StatusInternalServerError)
	}
}
