// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chart

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/cinetrend/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/cinetrend/internal/platform/request"
	"github.com/taibuivan/cinetrend/internal/platform/respond"
	"github.com/taibuivan/cinetrend/internal/platform/validate"
)

// selectionSourceHTTP tags selections made through the API.
const selectionSourceHTTP = "http"

// Handler implements the HTTP layer for the chart.
type Handler struct {
	service *Service
}

// NewHandler constructs a chart [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the chart endpoints. selectGuards wrap
// only the select route.
func (handler *Handler) Routes(selectGuards ...func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.figure)
	router.Get("/points", handler.points)
	router.With(selectGuards...).Post("/select", handler.selectPoint)

	return router
}

/*
GET /api/v1/chart.

Description: Returns the Plotly figure of the yearly best movies.

Response:
  - 200: Figure
*/
func (handler *Handler) figure(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Figure())
}

/*
GET /api/v1/chart/points.

Description: Lists the rendered sequence so clients can map indexes to movies.

Response:
  - 200: []Record in rendered order
*/
func (handler *Handler) points(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Points())
}

// selectRequest is the click payload.
type selectRequest struct {
	PointIndex *int `json:"point_index"`
}

/*
POST /api/v1/chart/select.

Description: Resolves a clicked point and starts its playback sequence. The
fade continues after the response is sent.

Request:
  - point_index: int (position in the rendered sequence)

Response:
  - 202: Selection
  - 400: Invalid JSON or point index out of range
  - 429: Too many clicks from this client
*/
func (handler *Handler) selectPoint(writer http.ResponseWriter, request *http.Request) {
	var body selectRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Present(FieldPointIndex, body.PointIndex != nil).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	context := ctxutil.WithSelectionSource(request.Context(), selectionSourceHTTP)
	selection, err := handler.service.Select(context, *body.PointIndex)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Accepted(writer, selection)
}
