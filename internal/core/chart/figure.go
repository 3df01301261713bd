// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chart renders the yearly best movies as a Plotly figure and turns
point clicks back into playback.

The rendered sequence is the yearly best sorted by release year. A click
carries an index into that sequence; [Service.Select] resolves it to the
record and forwards it to the playback sequencer.
*/
package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/taibuivan/cinetrend/internal/core/movie"
	"github.com/taibuivan/cinetrend/pkg/pointer"
	"github.com/taibuivan/cinetrend/pkg/slice"
)

// # Metrics

// Metric names a plotted record field.
type Metric string

const (
	MetricVoteAverage Metric = "vote_average"
	MetricRuntime     Metric = "runtime"
	MetricBudget      Metric = "budget"
)

// metricAxis holds the axis title and fixed range of each metric.
var metricAxis = map[Metric]struct {
	title  string
	yRange []float64
}{
	MetricVoteAverage: {title: "Calificación Promedio", yRange: []float64{0, 10}},
	MetricRuntime:     {title: "Duración (min)"},
	MetricBudget:      {title: "Presupuesto"},
}

func (m Metric) value(record movie.Record) *float64 {
	switch m {
	case MetricVoteAverage:
		return pointer.To(record.VoteAverage)
	case MetricRuntime:
		return record.Runtime
	case MetricBudget:
		return record.Budget
	}
	return nil
}

// ParseMetrics keeps known metrics, drops duplicates and always puts vote_average first.
func ParseMetrics(names []string) ([]Metric, error) {
	metrics := []Metric{MetricVoteAverage}
	seen := map[Metric]bool{MetricVoteAverage: true}

	for _, name := range names {
		metric := Metric(strings.TrimSpace(name))
		if metric == "" || seen[metric] {
			continue
		}
		if _, ok := metricAxis[metric]; !ok {
			return nil, fmt.Errorf("chart: unknown metric %q", name)
		}
		seen[metric] = true
		metrics = append(metrics, metric)
	}
	return metrics, nil
}

// # Figure Model

const (
	figureTitle   = "Películas con Mejor Calificación por Año"
	xAxisTitle    = "Año"
	background    = "#FEF3C7"
	awardColor    = "yellow"
	defaultColor  = "gray"
	outlineColor  = "black"
	hoverTemplate = "%{text}<br>Año: %{x}<br>Calificación: %{y:.3f}<extra></extra>"
	panelGap      = 0.04
)

// Options controls figure construction.
type Options struct {
	Metrics []Metric
	Mode    string
}

// Figure is a Plotly figure: data traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one scatter series.
type Trace struct {
	Type          string     `json:"type"`
	Mode          string     `json:"mode"`
	Name          string     `json:"name"`
	X             []int      `json:"x"`
	Y             []*float64 `json:"y"`
	Text          []string   `json:"text"`
	CustomData    []int      `json:"customdata"`
	HoverTemplate string     `json:"hovertemplate"`
	Marker        Marker     `json:"marker"`
	YAxis         string     `json:"yaxis,omitempty"`
}

// Marker styles the points of a trace.
type Marker struct {
	Size  []float64  `json:"size"`
	Color []string   `json:"color"`
	Line  MarkerLine `json:"line"`
}

// MarkerLine is the point outline.
type MarkerLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Axis is a Plotly axis object.
type Axis struct {
	Title  Title     `json:"title"`
	Range  []float64 `json:"range,omitempty"`
	Domain []float64 `json:"domain,omitempty"`
	Anchor string    `json:"anchor,omitempty"`
}

// Layout is the Plotly layout. YAxes[0] is "yaxis", YAxes[1] is "yaxis2" and so on.
type Layout struct {
	Title        Title
	XAxis        Axis
	YAxes        []Axis
	PlotBGColor  string
	PaperBGColor string
	ShowLegend   bool
	HoverMode    string
}

// MarshalJSON flattens YAxes into Plotly's numbered axis keys.
func (l Layout) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"title":         l.Title,
		"xaxis":         l.XAxis,
		"plot_bgcolor":  l.PlotBGColor,
		"paper_bgcolor": l.PaperBGColor,
		"showlegend":    l.ShowLegend,
		"hovermode":     l.HoverMode,
	}
	for i, axis := range l.YAxes {
		out[axisKey("yaxis", i)] = axis
	}
	return json.Marshal(out)
}

// axisKey returns Plotly's name for the i-th axis ("yaxis", "yaxis2", ...).
func axisKey(prefix string, i int) string {
	if i == 0 {
		return prefix
	}
	return prefix + strconv.Itoa(i+1)
}

// # Construction

// Sorted returns a copy of records stably sorted by release year.
func Sorted(records []movie.Record) []movie.Record {
	sorted := append([]movie.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReleaseYear < sorted[j].ReleaseYear
	})
	return sorted
}

// Build renders records, which must already be in display order, into a figure.
func Build(records []movie.Record, opts Options) Figure {
	metrics := opts.Metrics
	if len(metrics) == 0 {
		metrics = []Metric{MetricVoteAverage}
	}
	mode := opts.Mode
	if mode == "" {
		mode = "markers"
	}

	years := slice.Map(records, func(record movie.Record) int { return record.ReleaseYear })
	texts := slice.Map(records, hoverText)
	sizes := slice.Map(records, markerSize)
	colors := slice.Map(records, markerColor)
	indexes := make([]int, len(records))
	for i := range indexes {
		indexes[i] = i
	}

	figure := Figure{
		Layout: Layout{
			Title:        Title{Text: figureTitle},
			XAxis:        Axis{Title: Title{Text: xAxisTitle}},
			PlotBGColor:  background,
			PaperBGColor: background,
			ShowLegend:   false,
			HoverMode:    "closest",
		},
	}

	for i, metric := range metrics {
		values := slice.Map(records, metric.value)

		trace := Trace{
			Type:          "scatter",
			Mode:          mode,
			Name:          string(metric),
			X:             years,
			Y:             values,
			Text:          texts,
			CustomData:    indexes,
			HoverTemplate: hoverTemplate,
			Marker: Marker{
				Size:  sizes,
				Color: colors,
				Line:  MarkerLine{Color: outlineColor, Width: 1},
			},
		}
		if i > 0 {
			trace.YAxis = "y" + strconv.Itoa(i+1)
		}
		figure.Data = append(figure.Data, trace)

		axis := Axis{
			Title: Title{Text: metricAxis[metric].title},
			Range: metricAxis[metric].yRange,
		}
		if len(metrics) > 1 {
			axis.Domain = panelDomain(i, len(metrics))
			axis.Anchor = "x"
		}
		figure.Layout.YAxes = append(figure.Layout.YAxes, axis)
	}

	return figure
}

func markerSize(record movie.Record) float64 {
	return math.Sqrt(math.Max(record.VoteCount, 0)) / 5
}

func markerColor(record movie.Record) string {
	if record.WonAward {
		return awardColor
	}
	return defaultColor
}

// panelDomain splits the vertical space evenly; panel 0 is on top.
func panelDomain(i, n int) []float64 {
	top := 1 - float64(i)/float64(n)
	bottom := 1 - float64(i+1)/float64(n)
	if i > 0 {
		top -= panelGap / 2
	}
	if i < n-1 {
		bottom += panelGap / 2
	}
	return []float64{round(bottom), round(top)}
}

func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func hoverText(record movie.Record) string {
	return fmt.Sprintf("%s<br>Director: %s<br>País: %s<br>Película extra: %s<br>Votos: %s",
		record.Title,
		record.Director,
		record.CountryOfBirth,
		record.ExtraFilmNote,
		strconv.FormatFloat(record.VoteCount, 'f', -1, 64),
	)
}
