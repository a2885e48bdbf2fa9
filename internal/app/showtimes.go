package app

import (
	"net/http"

	"github.com/metinatakli/popcorn-palace/api"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
)

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request, showtimeID int64) {
	showtime, err := app.service.GetShowtime(r.Context(), showtimeID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readShowtimeRequest(w, r)
	if !ok {
		return
	}

	showtime, err := app.service.CreateShowtime(r.Context(), toDomainShowtime(input))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("showtime created", "showtime_id", showtime.ID, "theater", showtime.Theater)

	err = app.writeJSON(w, http.StatusCreated, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtime(w http.ResponseWriter, r *http.Request, showtimeID int64) {
	input, ok := app.readShowtimeRequest(w, r)
	if !ok {
		return
	}

	showtime, err := app.service.UpdateShowtime(r.Context(), showtimeID, toDomainShowtime(input))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiShowtime(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowtime(w http.ResponseWriter, r *http.Request, showtimeID int64) {
	err := app.service.DeleteShowtime(r.Context(), showtimeID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("showtime deleted", "showtime_id", showtimeID)

	w.WriteHeader(http.StatusOK)
}

func (app *Application) readShowtimeRequest(w http.ResponseWriter, r *http.Request) (api.ShowtimeRequest, bool) {
	var input api.ShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return input, false
	}

	err = appvalidator.Check(app.validator, input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return input, false
	}

	return input, true
}

func toDomainShowtime(input api.ShowtimeRequest) domain.Showtime {
	return domain.Showtime{
		MovieID:   *input.MovieId,
		Theater:   input.Theater,
		StartTime: input.StartTime.UTC(),
		EndTime:   input.EndTime.UTC(),
		Price:     *input.Price,
	}
}

func toApiShowtime(showtime *domain.Showtime) api.Showtime {
	return api.Showtime{
		Id:        showtime.ID,
		MovieId:   showtime.MovieID,
		Theater:   showtime.Theater,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
	}
}
