// Package layout places nodes at fixed positions for previews and snapshots.
// It is not a physics layout; positions depend only on node order.
package layout

import (
	"math"

	"github.com/san-kum/tempograph/internal/graph"
)

type Point struct {
	X, Y float64
}

// Circle spreads nodes evenly on a circle inside a width x height box,
// starting at twelve o'clock and going clockwise in node order.
func Circle(nodes []graph.Node, width, height float64) map[string]Point {
	out := make(map[string]Point, len(nodes))
	cx, cy := width/2, height/2
	if len(nodes) == 1 {
		out[nodes[0].ID] = Point{cx, cy}
		return out
	}

	radius := math.Min(width, height) / 2 * 0.85
	for i, n := range nodes {
		angle := 2*math.Pi*float64(i)/float64(len(nodes)) - math.Pi/2
		out[n.ID] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return out
}
