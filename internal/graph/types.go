package graph

import (
	"fmt"
	"math"
)

type Node struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// Edge is a directed relation. A nil Weight means unweighted, a nil Interval
// means time-unbounded.
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Weight   *float64 `json:"weight,omitempty"`
	Interval *int     `json:"interval,omitempty"`
}

// EffectiveWeight is the weight used for aggregation and rendering.
func (e Edge) EffectiveWeight() float64 {
	if e.Weight == nil {
		return 1
	}
	return *e.Weight
}

func (e Edge) SelfLoop() bool {
	return e.Source == e.Target
}

func (e Edge) String() string {
	return fmt.Sprintf("%s->%s", e.Source, e.Target)
}

type TimeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r TimeRange) Contains(t int) bool {
	return t >= r.Min && t <= r.Max
}

func (r TimeRange) Clamp(t int) int {
	if t < r.Min {
		return r.Min
	}
	if t > r.Max {
		return r.Max
	}
	return t
}

// Span is the number of integer steps in the range, inclusive. It saturates
// at math.MaxUint64 for the full int range.
func (r TimeRange) Span() uint64 {
	d := uint64(r.Max) - uint64(r.Min)
	if d == math.MaxUint64 {
		return d
	}
	return d + 1
}

// Offset returns r.Min advanced by d steps, without overflowing int.
func (r TimeRange) Offset(d uint64) int {
	return int(uint64(r.Min) + d)
}

type Graph struct {
	Nodes []Node     `json:"nodes"`
	Edges []Edge     `json:"edges"`
	Range *TimeRange `json:"range,omitempty"`
	Roles Roles      `json:"roles"`
	// Skipped counts records dropped for lacking a source or target value.
	Skipped int `json:"skipped,omitempty"`

	index map[string]int
}

// Temporal reports whether an interval role was mapped.
func (g *Graph) Temporal() bool {
	return g.Roles.Interval != ""
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	if g.index == nil {
		for _, n := range g.Nodes {
			if n.ID == id {
				return n, true
			}
		}
		return Node{}, false
	}
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// TotalWeight sums node weights.
func (g *Graph) TotalWeight() float64 {
	sum := 0.0
	for _, n := range g.Nodes {
		sum += n.Weight
	}
	return sum
}
