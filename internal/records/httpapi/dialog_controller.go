package httpapi

import (
	"errors"
	"net/http"

	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/httpapi/internal"
	"upkeep-server/internal/records/usecases"
)

const (
	openDialogErrMessage   = "failed to open dialog"
	getDialogErrMessage    = "failed to get dialog"
	changeDialogErrMessage = "failed to change dialog"
	submitDialogErrMessage = "failed to submit dialog"
	closeDialogErrMessage  = "failed to close dialog"
)

func NewDialogController(service usecases.DialogService) *DialogController {
	return &DialogController{
		service: service,
	}
}

var _ httpserver.Controller = &DialogController{}

type DialogController struct {
	service usecases.DialogService
}

func (c *DialogController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /v1/entities/{entity}/dialogs", c.openDialog())
	router.Handle("GET /v1/dialogs/{id}", c.getDialog())
	router.Handle("PATCH /v1/dialogs/{id}", c.changeDialog())
	router.Handle("POST /v1/dialogs/{id}/submit", c.submitDialog())
	router.Handle("POST /v1/dialogs/{id}/close", c.closeDialog())
	router.Handle("DELETE /v1/dialogs/{id}", c.cancelDialog())
}

func (c *DialogController) openDialog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.DialogOpenRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil && !errors.Is(err, httpserver.ErrEmptyBody) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		entity := r.PathValue("entity")

		var (
			view usecases.DialogView
			err  error
		)
		if body.RecordID == "" {
			view, err = c.service.OpenCreate(r.Context(), entity)
		} else {
			view, err = c.service.OpenEdit(r.Context(), entity, domain.ID(body.RecordID))
		}
		if err != nil {
			replyWithDomainError(w, err, openDialogErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToDialogResponse(view))
	}
}

func (c *DialogController) getDialog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := c.service.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			replyWithDomainError(w, err, getDialogErrMessage)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToDialogResponse(view))
	}
}

func (c *DialogController) changeDialog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.DialogChangeRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		view, err := c.service.Change(r.Context(), r.PathValue("id"), domain.Values(body.Values))
		if err != nil {
			replyWithDomainError(w, err, changeDialogErrMessage)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToDialogResponse(view))
	}
}

// submitDialog answers 200 with the saved record, or 422 with the dialog
// carrying its inline field errors.
func (c *DialogController) submitDialog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := c.service.Submit(r.Context(), r.PathValue("id"))
		if err != nil {
			if view.ID != "" && len(view.Errors) > 0 {
				httpserver.ReplyJSONResponse(w, http.StatusUnprocessableEntity, internal.ToDialogResponse(view))
				return
			}
			replyWithDomainError(w, err, submitDialogErrMessage)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToDialogResponse(view))
	}
}

func (c *DialogController) closeDialog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.service.Close(r.Context(), r.PathValue("id")); err != nil {
			replyWithDomainError(w, err, closeDialogErrMessage)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *DialogController) cancelDialog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.service.Cancel(r.Context(), r.PathValue("id")); err != nil {
			replyWithDomainError(w, err, closeDialogErrMessage)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
