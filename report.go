package memobench

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
)

// WriteTable writes one row per measurement with both averages in seconds.
func WriteTable(w io.Writer, r Result) error {
	if _, err := fmt.Fprintf(w, "run %s, %d trials per n\n", r.RunID, r.Trials); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-10s %-21s %-20s\n", "n", "LRU Cache Time (s)", "Splay Tree Time (s)"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "----------------------------------------------------"); err != nil {
		return err
	}

	for _, m := range r.Measurements {
		if _, err := fmt.Fprintf(w, "%-10d %-21.8g %-20.8g\n", m.N, m.LRU.Seconds(), m.Splay.Seconds()); err != nil {
			return err
		}
	}
	return nil
}

// RenderChart draws both series against n as a PNG with a legend.
func RenderChart(w io.Writer, r Result) error {
	if len(r.Measurements) < 2 {
		return errors.New("chart needs at least two measurements")
	}

	xs := make([]float64, len(r.Measurements))
	lruSeconds := make([]float64, len(r.Measurements))
	splaySeconds := make([]float64, len(r.Measurements))
	for i, m := range r.Measurements {
		xs[i] = float64(m.N)
		lruSeconds[i] = m.LRU.Seconds()
		splaySeconds[i] = m.Splay.Seconds()
	}

	graph := chart.Chart{
		Title: "Execution Time Comparison: LRU Cache vs Splay Tree",
		XAxis: chart.XAxis{Name: "Fibonacci Number (n)"},
		YAxis: chart.YAxis{
			Name: "Average Execution Time (seconds)",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2g", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "LRU Cache", XValues: xs, YValues: lruSeconds},
			chart.ContinuousSeries{Name: "Splay Tree", XValues: xs, YValues: splaySeconds},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
