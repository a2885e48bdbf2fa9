package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/popcorn-palace/api"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/samber/lo"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The method is not supported for this resource"
	ErrFailedValidation = "One or more fields failed validation"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:   ErrFailedValidation,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
		ValidationErrors: lo.Map(validationErr.Issues, func(issue domain.FieldIssue, _ int) api.ValidationError {
			return api.ValidationError{
				Field: issue.Field,
				Issue: issue.Issue,
			}
		}),
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// serviceErrorResponse maps an error returned by the booking service to the
// response of its kind. Errors without a kind are storage failures.
func (app *Application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidationFailed:
		app.failedValidationResponse(w, r, err)
	case domain.KindNotFound:
		app.contextGetLogger(r).Info("request rejected", "reason", err.Error())
		app.errorResponse(w, r, http.StatusNotFound, err.Error())
	case domain.KindConflict:
		app.contextGetLogger(r).Warn("request conflicts with current state", "reason", err.Error())
		app.editConflictResponseWithErr(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
