package export

import (
	"math"

	"github.com/san-kum/tempograph/internal/graph"
)

// Opacities applied to filtered-out elements.
const (
	OpacityVisible    = 1.0
	OpacityHiddenNode = 0.1
	OpacityHiddenEdge = 0.05
)

// NodeRadius grows with the square root of the aggregated weight.
func NodeRadius(weight float64) float64 {
	if weight < 1 {
		weight = 1
	}
	return 5 + math.Sqrt(weight)*2
}

// EdgeStroke is sqrt(weight) for weighted edges and 2 otherwise.
func EdgeStroke(e graph.Edge) float64 {
	if e.Weight == nil || *e.Weight == 0 {
		return 2
	}
	return math.Sqrt(*e.Weight)
}
