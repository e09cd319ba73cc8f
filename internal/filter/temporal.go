package filter

import (
	"math"
	"sort"

	"github.com/san-kum/tempograph/internal/graph"
)

// Visibility is a full visibility assignment for one cursor value.
type Visibility struct {
	Cursor int             `json:"cursor"`
	Nodes  map[string]bool `json:"nodes"`
	Edges  []bool          `json:"edges"`
}

func (v Visibility) VisibleNodes() int {
	n := 0
	for _, ok := range v.Nodes {
		if ok {
			n++
		}
	}
	return n
}

func (v Visibility) VisibleEdges() int {
	n := 0
	for _, ok := range v.Edges {
		if ok {
			n++
		}
	}
	return n
}

// reveal is the smallest cursor at which an element shows. An element with
// ok false is never shown.
type reveal struct {
	from int
	ok   bool
}

func (r reveal) at(t int) bool {
	return r.ok && r.from <= t
}

// Index caches, per edge and per node, the smallest cursor at which it becomes visible.
type Index struct {
	g         *graph.Graph
	edges     []reveal
	nodes     map[string]reveal
	incidence map[string][]int

	// sorted reveal cursors of reachable edges and nodes
	edgeFroms []int
	nodeFroms []int
}

func NewIndex(g *graph.Graph, policy Policy) *Index {
	ix := &Index{
		g:         g,
		edges:     make([]reveal, len(g.Edges)),
		nodes:     make(map[string]reveal, len(g.Nodes)),
		incidence: make(map[string][]int, len(g.Nodes)),
	}

	for _, n := range g.Nodes {
		ix.nodes[n.ID] = reveal{}
	}

	for i, e := range g.Edges {
		var r reveal
		switch {
		case e.Interval != nil:
			r = reveal{from: *e.Interval, ok: true}
		case policy == PolicyVisible:
			r = reveal{from: math.MinInt, ok: true}
		}
		ix.edges[i] = r

		ix.incidence[e.Source] = append(ix.incidence[e.Source], i)
		if !e.SelfLoop() {
			ix.incidence[e.Target] = append(ix.incidence[e.Target], i)
		}

		if !r.ok {
			continue
		}
		ix.edgeFroms = append(ix.edgeFroms, r.from)
		for _, id := range [2]string{e.Source, e.Target} {
			if cur := ix.nodes[id]; !cur.ok || r.from < cur.from {
				ix.nodes[id] = r
			}
		}
	}

	for _, r := range ix.nodes {
		if r.ok {
			ix.nodeFroms = append(ix.nodeFroms, r.from)
		}
	}
	sort.Ints(ix.edgeFroms)
	sort.Ints(ix.nodeFroms)

	return ix
}

// At evaluates visibility at cursor t.
func (ix *Index) At(t int) Visibility {
	v := Visibility{
		Cursor: t,
		Nodes:  make(map[string]bool, len(ix.nodes)),
		Edges:  make([]bool, len(ix.edges)),
	}
	for i, r := range ix.edges {
		v.Edges[i] = r.at(t)
	}
	for id, r := range ix.nodes {
		v.Nodes[id] = r.at(t)
	}
	return v
}

// Counts returns the number of visible nodes and edges at t without building
// a full Visibility.
func (ix *Index) Counts(t int) (nodes, edges int) {
	return countAtOrBelow(ix.nodeFroms, t), countAtOrBelow(ix.edgeFroms, t)
}

func countAtOrBelow(sorted []int, t int) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i] > t })
}

// Incident returns the indices of edges touching node id, in edge order.
func (ix *Index) Incident(id string) []int {
	return ix.incidence[id]
}

// FirstVisible returns the cursor at which node id first becomes visible.
func (ix *Index) FirstVisible(id string) (int, bool) {
	r := ix.nodes[id]
	return r.from, r.ok
}

// ChangePoints returns, in order, r.Min followed by every cursor inside r at
// which visibility changes. Visibility is constant from one point up to the next.
func (ix *Index) ChangePoints(r graph.TimeRange) []int {
	points := []int{r.Min}
	for _, from := range ix.edgeFroms {
		if from > r.Min && from <= r.Max && from != points[len(points)-1] {
			points = append(points, from)
		}
	}
	return points
}

// Timeline returns the number of visible nodes and edges over r. Ranges of
// up to width steps get one sample per step; wider ranges are sampled at
// width evenly spaced cursors, both ends included.
func (ix *Index) Timeline(r graph.TimeRange, width int) (nodes, edges []float64) {
	if width < 2 {
		width = 2
	}
	span := r.Span()
	samples := uint64(width)
	if span < samples {
		samples = span
	}

	nodes = make([]float64, 0, samples)
	edges = make([]float64, 0, samples)
	last := uint64(r.Max) - uint64(r.Min)
	for i := uint64(0); i < samples; i++ {
		off := last
		if i < samples-1 {
			off = uint64(float64(last) * float64(i) / float64(samples-1))
			if off > last {
				off = last
			}
		}
		n, e := ix.Counts(r.Offset(off))
		nodes = append(nodes, float64(n))
		edges = append(edges, float64(e))
	}
	return nodes, edges
}

// At evaluates visibility without keeping an index.
func At(g *graph.Graph, t int, policy Policy) Visibility {
	return NewIndex(g, policy).At(t)
}
