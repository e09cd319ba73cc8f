package graph

import (
	"github.com/san-kum/tempograph/internal/records"
)

// Map projects records onto edges and aggregates nodes.
//
// It returns a *MissingRoleError when Source or Target is unset or absent from
// the schema, and an *IntervalResolutionDeferred when an interval role is
// mapped but no record yields a parseable interval.
func Map(recs []records.Record, roles Roles) (*Graph, error) {
	if err := roles.Validate(records.Fields(recs)); err != nil {
		return nil, err
	}

	g := &Graph{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0, len(recs)),
		Roles: roles,
		index: make(map[string]int),
	}

	for _, rec := range recs {
		src, okS := rec.Get(roles.Source)
		dst, okT := rec.Get(roles.Target)
		if !okS || !okT {
			g.Skipped++
			continue
		}

		e := Edge{Source: src, Target: dst}
		if roles.Weight != "" {
			if v, ok := rec.Get(roles.Weight); ok {
				e.Weight = parseWeight(v)
			}
		}
		if roles.Interval != "" {
			if v, ok := rec.Get(roles.Interval); ok {
				e.Interval = parseInterval(v)
			}
		}

		g.Edges = append(g.Edges, e)
		g.accumulate(e.Source, e.EffectiveWeight())
		g.accumulate(e.Target, e.EffectiveWeight())
	}

	if roles.Interval != "" {
		r, ok := ResolveRange(g.Edges)
		if !ok {
			return nil, &IntervalResolutionDeferred{Graph: g}
		}
		g.Range = &r
	}

	return g, nil
}

func (g *Graph) accumulate(id string, w float64) {
	i, ok := g.index[id]
	if !ok {
		i = len(g.Nodes)
		g.index[id] = i
		g.Nodes = append(g.Nodes, Node{ID: id})
	}
	g.Nodes[i].Weight += w
}

// ResolveRange returns the bounds of all defined intervals, or false if none
// is defined.
func ResolveRange(edges []Edge) (TimeRange, bool) {
	var r TimeRange
	found := false
	for _, e := range edges {
		if e.Interval == nil {
			continue
		}
		v := *e.Interval
		if !found {
			r = TimeRange{Min: v, Max: v}
			found = true
			continue
		}
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r, found
}
