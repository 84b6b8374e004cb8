package telemetry

import (
	"github.com/guptarohit/asciigraph"
)

// Plot renders series as an ASCII line chart. It returns an empty string for
// an empty series.
func Plot(series []float64, width, height int, caption string) string {
	if len(series) == 0 {
		return ""
	}
	if len(series) == 1 {
		series = []float64{series[0], series[0]}
	}
	opts := []asciigraph.Option{asciigraph.Height(height)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(series, opts...)
}
