package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
)

// Document is the renderer-facing view of a graph.
type Document struct {
	Nodes      []graph.Node       `json:"nodes"`
	Edges      []graph.Edge       `json:"edges"`
	Range      *graph.TimeRange   `json:"range,omitempty"`
	Roles      graph.Roles        `json:"roles"`
	Visibility *filter.Visibility `json:"visibility,omitempty"`
}

func NewDocument(g *graph.Graph, vis *filter.Visibility) Document {
	return Document{
		Nodes:      g.Nodes,
		Edges:      g.Edges,
		Range:      g.Range,
		Roles:      g.Roles,
		Visibility: vis,
	}
}

func WriteJSON(w io.Writer, g *graph.Graph, vis *filter.Visibility) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(g, vis))
}
