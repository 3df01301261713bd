// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinetrend/internal/core/chart"
)

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(recorder, request)
	return recorder
}

func newTestHandler(t *testing.T) (*recordingPlayer, http.Handler) {
	t.Helper()
	player := &recordingPlayer{}
	service := chart.NewService(chart.Options{}, player, nil, discardLogger())
	service.Render(context.Background(), bestRecords())
	return player, chart.NewHandler(service).Routes()
}

/*
TestHandler_Figure serves the Plotly figure in the data envelope.
*/
func TestHandler_Figure(t *testing.T) {
	_, handler := newTestHandler(t)

	recorder := serve(handler, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Data   []map[string]json.RawMessage `json:"data"`
			Layout map[string]json.RawMessage   `json:"layout"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data.Data, 1)
	assert.JSONEq(t, `[0,1,2]`, string(body.Data.Data[0]["customdata"]))
	assert.Contains(t, body.Data.Layout, "yaxis")
}

/*
TestHandler_Points lists the rendered sequence.
*/
func TestHandler_Points(t *testing.T) {
	_, handler := newTestHandler(t)

	recorder := serve(handler, http.MethodGet, "/points", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"slug":"b-2001"`)
}

/*
TestHandler_Select accepts a valid click and rejects bad payloads.
*/
func TestHandler_Select(t *testing.T) {
	player, handler := newTestHandler(t)

	recorder := serve(handler, http.MethodPost, "/select", `{"point_index":2}`)
	require.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"title":"C"`)
	assert.Equal(t, []string{"http"}, player.sources)

	cases := map[string]string{
		"missing index": `{}`,
		"out of range":  `{"point_index":7}`,
		"unknown field": `{"point":1}`,
		"not json":      `click`,
	}
	for name, payload := range cases {
		recorder = serve(handler, http.MethodPost, "/select", payload)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, name)
	}
	assert.Len(t, player.played, 1)
}
