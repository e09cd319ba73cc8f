// Package metrics summarizes how a graph unfolds over its time range.
package metrics

import (
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
)

// Metric accumulates one number from observed visibilities. steps is the
// number of consecutive cursor values sharing vis.
type Metric interface {
	Name() string
	Observe(g *graph.Graph, vis filter.Visibility, steps float64)
	Value() float64
	Reset()
}

func Defaults() []Metric {
	return []Metric{NewCoverage(), NewPeakEdges(), NewDensity(), NewMaxDegree()}
}

// Result is a metric value in the order the metrics were given.
type Result struct {
	Name  string
	Value float64
}

// Sweep observes the graph's range once per stretch of constant visibility,
// so its cost follows the number of distinct intervals, not the width of the
// range. A graph without a range is observed once with everything visible.
func Sweep(g *graph.Graph, ix *filter.Index, ms []Metric) []Result {
	for _, m := range ms {
		m.Reset()
	}

	if g.Range == nil {
		vis := filter.At(g, 0, filter.PolicyVisible)
		for _, m := range ms {
			m.Observe(g, vis, 1)
		}
	} else {
		r := *g.Range
		points := ix.ChangePoints(r)
		for i, t := range points {
			var steps float64
			if i+1 < len(points) {
				steps = float64(uint64(points[i+1]) - uint64(t))
			} else {
				steps = float64(uint64(r.Max)-uint64(t)) + 1
			}
			vis := ix.At(t)
			for _, m := range ms {
				m.Observe(g, vis, steps)
			}
		}
	}

	out := make([]Result, len(ms))
	for i, m := range ms {
		out[i] = Result{Name: m.Name(), Value: m.Value()}
	}
	return out
}
