// Package graph maps uniform records onto a weighted, optionally time-stamped
// graph.
//
// The package defines the core data contracts consumed by renderers:
//
//   - [Node]: a distinct entity with an aggregated weight
//   - [Edge]: a directed relation with optional weight and interval
//   - [TimeRange]: the bounds of all parsed intervals
//   - [Graph]: the result of one mapping, see [Map]
//
// # Example
//
//	recs, _ := records.Parse(text, records.DefaultOptions())
//	g, err := graph.Map(recs, graph.Roles{Source: "from", Target: "to", Interval: "year"})
//	var d *graph.IntervalResolutionDeferred
//	if errors.As(err, &d) {
//		g, err = d.Resolve(1990, 2000)
//	}
//
// Mapping is a pure function of its inputs. Self-loops add their weight to the
// node twice, once per endpoint, so that the sum of node weights is always
// twice the sum of effective edge weights.
package graph
