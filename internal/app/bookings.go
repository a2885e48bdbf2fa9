package app

import (
	"net/http"

	"github.com/metinatakli/popcorn-palace/api"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
)

func (app *Application) BookTicket(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.BookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = appvalidator.Check(app.validator, input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	req := domain.BookingRequest{
		ShowtimeID: *input.ShowtimeId,
		SeatNumber: input.SeatNumber,
		UserID:     input.UserId,
	}

	bookingID, err := app.service.BookTicket(r.Context(), req)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	logger.Info("ticket booked", "booking_id", bookingID, "showtime_id", req.ShowtimeID, "seat_number", *req.SeatNumber)

	err = app.writeJSON(w, http.StatusCreated, api.BookingResponse{BookingId: bookingID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
