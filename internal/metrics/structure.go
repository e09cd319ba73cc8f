package metrics

import (
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
)

// Density is the mean directed density E/(N(N-1)) of the visible subgraph.
// Steps with fewer than two visible nodes count as zero.
type Density struct {
	total float64
	steps float64
}

func NewDensity() *Density { return &Density{} }

func (d *Density) Name() string { return "density" }

func (d *Density) Observe(_ *graph.Graph, vis filter.Visibility, steps float64) {
	d.steps += steps
	n := vis.VisibleNodes()
	if n < 2 {
		return
	}
	d.total += steps * float64(vis.VisibleEdges()) / float64(n*(n-1))
}

func (d *Density) Value() float64 {
	if d.steps == 0 {
		return 0
	}
	return d.total / d.steps
}

func (d *Density) Reset() {
	d.total = 0
	d.steps = 0
}

// MaxDegree is the highest number of visible edge endpoints on one node seen
// at any step. A self-loop counts twice.
type MaxDegree struct {
	max int
}

func NewMaxDegree() *MaxDegree { return &MaxDegree{} }

func (m *MaxDegree) Name() string { return "max_degree" }

func (m *MaxDegree) Observe(g *graph.Graph, vis filter.Visibility, _ float64) {
	deg := make(map[string]int)
	for i, e := range g.Edges {
		if i >= len(vis.Edges) || !vis.Edges[i] {
			continue
		}
		deg[e.Source]++
		deg[e.Target]++
	}
	for _, d := range deg {
		if d > m.max {
			m.max = d
		}
	}
}

func (m *MaxDegree) Value() float64 { return float64(m.max) }

func (m *MaxDegree) Reset() { m.max = 0 }
