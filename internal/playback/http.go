// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/cinetrend/internal/platform/respond"
)

// Handler exposes the sequencer state over HTTP.
type Handler struct {
	sequencer *Sequencer
}

// NewHandler constructs a playback [Handler].
func NewHandler(sequencer *Sequencer) *Handler {
	return &Handler{sequencer: sequencer}
}

// Routes returns a [chi.Router] with the playback endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.status)
	return router
}

/*
GET /api/v1/playback.

Description: Reports the active selection, its handles and the fade job.

Response:
  - 200: Report
*/
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.sequencer.Snapshot())
}
