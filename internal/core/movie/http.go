// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/cinetrend/internal/platform/request"
	"github.com/taibuivan/cinetrend/internal/platform/respond"
	"github.com/taibuivan/cinetrend/pkg/pagination"
)

// Handler implements the HTTP layer for the movie catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a movie [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMovies)
	router.Get("/best-by-year", handler.bestByYear)
	router.Post("/refresh", handler.refresh)
	router.Get("/{slug}", handler.getMovie)

	return router
}

/*
GET /api/v1/movies.

Description: Lists the cleaned catalogue in source order.

Request:
  - page, limit: query parameters

Response:
  - 200: []Record with pagination metadata
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	records, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/movies/best-by-year.

Description: Returns the highest rated movie of each release year.

Response:
  - 200: []Record in first-seen year order
*/
func (handler *Handler) bestByYear(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Best())
}

/*
GET /api/v1/movies/{slug}.

Description: Retrieves a single movie by slug.

Response:
  - 200: Record
  - 400: Malformed slug
  - 404: Movie not found
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	record, err := handler.service.Get(request.Context(), requestutil.Param(request, FieldSlug))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

/*
POST /api/v1/movies/refresh.

Description: Reloads the dataset from its configured location.

Response:
  - 200: Snapshot
  - 503: Dataset could not be loaded; the previous one is still served
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.service.Refresh(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}
