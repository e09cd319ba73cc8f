package metrics

import (
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
)

// Coverage is the mean share of nodes visible per step.
type Coverage struct {
	total float64
	steps float64
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(g *graph.Graph, vis filter.Visibility, steps float64) {
	c.steps += steps
	if len(g.Nodes) == 0 {
		return
	}
	c.total += steps * float64(vis.VisibleNodes()) / float64(len(g.Nodes))
}

func (c *Coverage) Value() float64 {
	if c.steps == 0 {
		return 0
	}
	return c.total / c.steps
}

func (c *Coverage) Reset() {
	c.total = 0
	c.steps = 0
}

// PeakEdges is the largest number of edges visible at once.
type PeakEdges struct {
	peak int
}

func NewPeakEdges() *PeakEdges { return &PeakEdges{} }

func (p *PeakEdges) Name() string { return "peak_edges" }

func (p *PeakEdges) Observe(_ *graph.Graph, vis filter.Visibility, _ float64) {
	if n := vis.VisibleEdges(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakEdges) Value() float64 { return float64(p.peak) }

func (p *PeakEdges) Reset() { p.peak = 0 }
