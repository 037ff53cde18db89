// Package chart renders price histograms as standalone HTML bar charts.
package chart

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// Chart text.
const (
	Title          = "Price Distribution"
	EmptySubtitle  = "No flight data available"
	SeriesName     = "Flights"
	subtitleFormat = "%d flights found"
)

// Subtitle returns the caption shown under the chart title.
func Subtitle(flightCount int) string {
	if flightCount == 0 {
		return EmptySubtitle
	}
	return fmt.Sprintf(subtitleFormat, flightCount)
}

// NewHistogramChart builds a bar chart with one bar per bucket. With no
// flights the chart carries only its title and the empty-state caption.
func NewHistogramChart(buckets []domain.PriceBucket, flightCount int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: Title,
			Width:     "800px",
			Height:    "300px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    Title,
			Subtitle: Subtitle(flightCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: SeriesName, MinInterval: 1}),
	)

	if flightCount == 0 {
		return bar
	}

	labels := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		data[i] = opts.BarData{Name: b.Label, Value: b.Count}
	}

	bar.SetXAxis(labels).AddSeries(SeriesName, data)
	return bar
}

// RenderHistogram writes the histogram chart page to w.
func RenderHistogram(w io.Writer, buckets []domain.PriceBucket, flightCount int) error {
	if err := NewHistogramChart(buckets, flightCount).Render(w); err != nil {
		return fmt.Errorf("render histogram chart: %w", err)
	}
	return nil
}

// HistogramPage renders the histogram chart page into memory.
func HistogramPage(buckets []domain.PriceBucket, flightCount int) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHistogram(&buf, buckets, flightCount); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
