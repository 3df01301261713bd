// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinetrend/internal/web"
)

/*
TestPage serves the embedded document wired to the chart API.
*/
func TestPage(t *testing.T) {
	recorder := httptest.NewRecorder()
	web.Page().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), "/api/v1/chart/select")
	assert.Contains(t, recorder.Body.String(), "plotly_click")
}
