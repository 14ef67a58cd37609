package handlers

import (
	"errors"
	"net/http"

	"phishguard-api/services"
)

// statusFor maps a pipeline error to the HTTP status the caller sees.
func statusFor(err error) int {
	var extractErr *services.ExtractionError
	switch {
	case errors.Is(err, services.ErrEmptyURL):
		return http.StatusBadRequest
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown on the result page for a failed submission.
func userMessage(err error) string {
	var (
		extractErr *services.ExtractionError
		auditErr   *services.AuditWriteError
	)
	switch {
	case errors.Is(err, services.ErrEmptyURL):
		return "Please enter a URL."
	case errors.As(err, &extractErr):
		return "Could not analyse this URL: " + extractErr.Err.Error()
	case errors.As(err, &auditErr):
		return "The verdict was recorded, but writing it to the phishing log failed."
	default:
		return "The prediction could not be completed. Please try again later."
	}
}
