package filter

import (
	"strings"

	"github.com/san-kum/tempograph/internal/graph"
)

// Highlight marks nodes whose id contains a keyword and the edges touching them.
type Highlight struct {
	Keyword string          `json:"keyword"`
	Nodes   map[string]bool `json:"nodes"`
	Edges   []bool          `json:"edges"`
}

// Keyword matches case-insensitively. An empty keyword highlights everything.
func Keyword(g *graph.Graph, keyword string) Highlight {
	kw := strings.ToLower(keyword)
	h := Highlight{
		Keyword: keyword,
		Nodes:   make(map[string]bool, len(g.Nodes)),
		Edges:   make([]bool, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		h.Nodes[n.ID] = strings.Contains(strings.ToLower(n.ID), kw)
	}
	for i, e := range g.Edges {
		h.Edges[i] = h.Nodes[e.Source] || h.Nodes[e.Target]
	}
	return h
}
