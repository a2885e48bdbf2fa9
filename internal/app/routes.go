package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/popcorn-palace/api"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.observeRequests)

	r.Get("/health", app.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPI)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/movies", func(r chi.Router) {
		r.Get("/all", func(w http.ResponseWriter, r *http.Request) {
			var params api.GetMoviesParams

			for name, dst := range map[string]any{
				"page":     &params.Page,
				"pageSize": &params.PageSize,
				"sort":     &params.Sort,
				"term":     &params.Term,
			} {
				err := bindQueryParam(r, name, dst)
				if err != nil {
					app.badRequestResponse(w, r, err)
					return
				}
			}

			app.GetMovies(w, r, params)
		})
		r.Post("/", app.CreateMovie)
		r.Post("/update/{movieTitle}", app.withMovieTitle(app.UpdateMovie))
		r.Delete("/{movieTitle}", app.withMovieTitle(app.DeleteMovie))
	})

	r.Route("/showtimes", func(r chi.Router) {
		r.Post("/", app.CreateShowtime)
		r.Get("/{showtimeId}", app.withShowtimeID(app.GetShowtime))
		r.Delete("/{showtimeId}", app.withShowtimeID(app.DeleteShowtime))
		r.Post("/update/{showtimeId}", app.withShowtimeID(app.UpdateShowtime))
	})

	r.Post("/bookings", app.BookTicket)

	return r
}

func (app *Application) withShowtimeID(next func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var showtimeID int64

		err := bindPathParam(r, "showtimeId", &showtimeID)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		next(w, r, showtimeID)
	}
}

func (app *Application) withMovieTitle(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var movieTitle string

		err := bindPathParam(r, "movieTitle", &movieTitle)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		next(w, r, movieTitle)
	}
}
