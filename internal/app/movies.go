package app

import (
	"net/http"

	"github.com/metinatakli/popcorn-palace/api"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
	"github.com/samber/lo"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := appvalidator.Check(app.validator, params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.service.ListMovies(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   lo.Map(movies, func(m *domain.Movie, _ int) api.Movie { return toApiMovie(m) }),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readMovieRequest(w, r)
	if !ok {
		return
	}

	movie, err := app.service.CreateMovie(r.Context(), toDomainMovie(input))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request, movieTitle string) {
	input, ok := app.readMovieRequest(w, r)
	if !ok {
		return
	}

	movie, err := app.service.UpdateMovie(r.Context(), movieTitle, toDomainMovie(input))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request, movieTitle string) {
	err := app.service.DeleteMovie(r.Context(), movieTitle)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("movie deleted", "title", movieTitle)

	w.WriteHeader(http.StatusOK)
}

func (app *Application) readMovieRequest(w http.ResponseWriter, r *http.Request) (api.MovieRequest, bool) {
	var input api.MovieRequest

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

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

// toDomainMovie expects input to have passed the request checks, so every
// required pointer is set.
func toDomainMovie(input api.MovieRequest) domain.Movie {
	return domain.Movie{
		Title:       input.Title,
		Genre:       input.Genre,
		Duration:    *input.Duration,
		Rating:      *input.Rating,
		ReleaseYear: *input.ReleaseYear,
	}
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	return api.Movie{
		Id:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
		Rating:      movie.Rating,
		ReleaseYear: movie.ReleaseYear,
	}
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
