package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/popcorn-palace/api"
	"github.com/metinatakli/popcorn-palace/internal/booking"
	"github.com/metinatakli/popcorn-palace/internal/ledger"
	"github.com/metinatakli/popcorn-palace/internal/mocks"
	"github.com/metinatakli/popcorn-palace/internal/validator"
)

type testDeps struct {
	movieRepo    *mocks.MockMovieRepo
	showtimeRepo *mocks.MockShowtimeRepo
	ticketRepo   *mocks.MockTicketRepo
	publisher    *mocks.MockEventPublisher
}

func (d *testDeps) assertExpectations(t *testing.T) {
	d.movieRepo.AssertExpectations(t)
	d.showtimeRepo.AssertExpectations(t)
	d.ticketRepo.AssertExpectations(t)
}

func newTestApplication() (*Application, *testDeps) {
	deps := &testDeps{
		movieRepo:    new(mocks.MockMovieRepo),
		showtimeRepo: new(mocks.MockShowtimeRepo),
		ticketRepo:   new(mocks.MockTicketRepo),
		publisher:    new(mocks.MockEventPublisher),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validator.NewValidator()

	service := booking.NewService(
		logger,
		v,
		booking.Repositories{
			Movies:    deps.movieRepo,
			Showtimes: deps.showtimeRepo,
			Tickets:   deps.ticketRepo,
		},
		ledger.NewKeyedMutex(),
		deps.publisher,
	)

	app := NewApp(Config{Env: "test"}, logger, v, service)

	return app, deps
}

// serve runs the request through the full router so that path parameters are
// bound the same way they are in production.
func serve(app *Application, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)
	return w
}

// newRequest encodes body as JSON unless it is a string, which is sent as is.
func newRequest(t *testing.T, method, url string, body any) *http.Request {
	var reader io.Reader = http.NoBody

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")

	return r
}

type wantError struct {
	wantStatus     int
	wantErrMessage string
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt wantError) {
	t.Helper()

	if w.Code != tt.wantStatus {
		t.Fatalf("Status = %d, want %d, body: %s", w.Code, tt.wantStatus, w.Body.String())
	}

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Field+" "+vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error '%s' not found in response %+v", tt.wantErrMessage, validationResp.ValidationErrors)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
