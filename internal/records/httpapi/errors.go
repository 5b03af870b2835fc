package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/records/dialog"
	"upkeep-server/internal/records/domain"
)

const (
	validationFailedErrMessage = "validation failed"
	entityNotFoundErrMessage   = "entity not found"
	recordNotFoundErrMessage   = "record not found"
	dialogNotFoundErrMessage   = "dialog not found"
	invalidBodyErrMessage      = "invalid request body"
)

// replyWithDomainError maps the records and dialog errors to HTTP answers.
// Anything unknown is logged and reported as fallback with a 500.
func replyWithDomainError(w http.ResponseWriter, err error, fallback string) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		httpserver.ReplyWithFieldErrors(w, http.StatusUnprocessableEntity, validationFailedErrMessage, verr.Fields)
	case errors.Is(err, domain.ErrEntityNotFound):
		httpserver.ReplyWithError(w, http.StatusNotFound, entityNotFoundErrMessage)
	case errors.Is(err, domain.ErrRecordNotFound):
		httpserver.ReplyWithError(w, http.StatusNotFound, recordNotFoundErrMessage)
	case errors.Is(err, dialog.ErrSessionNotFound):
		httpserver.ReplyWithError(w, http.StatusNotFound, dialogNotFoundErrMessage)
	case errors.Is(err, dialog.ErrSubmitInProgress), errors.Is(err, dialog.ErrAlreadySubmitted), errors.Is(err, dialog.ErrDialogClosed):
		httpserver.ReplyWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, dialog.ErrUnknownField), errors.Is(err, dialog.ErrOptionNotAllowed):
		httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(fallback, slog.String("error", err.Error()))
		httpserver.ReplyWithError(w, http.StatusInternalServerError, fallback)
	}
}
