package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/layout"
)

type SVGOptions struct {
	Width     int
	Height    int
	NodeColor string
	Labels    bool
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 960, Height: 600, NodeColor: "#69b3a2", Labels: true}
}

// SVG renders a snapshot of g on a circle layout. With a visibility, filtered
// elements are faded instead of removed.
func SVG(g *graph.Graph, vis *filter.Visibility, opts SVGOptions) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultSVGOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.NodeColor == "" {
		opts.NodeColor = DefaultSVGOptions().NodeColor
	}

	pos := layout.Circle(g.Nodes, float64(opts.Width), float64(opts.Height))

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g stroke="#999" stroke-opacity="0.6">
`, opts.Width, opts.Height, opts.Width, opts.Height))

	for i, e := range g.Edges {
		p0, p1 := pos[e.Source], pos[e.Target]
		opacity := OpacityVisible
		if vis != nil && !vis.Edges[i] {
			opacity = OpacityHiddenEdge
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.2f" opacity="%.2f"/>
`, p0.X, p0.Y, p1.X, p1.Y, EdgeStroke(e), opacity))
	}

	sb.WriteString(fmt.Sprintf("</g>\n<g stroke=\"#fff\" stroke-width=\"1.5\" fill=\"%s\">\n", html.EscapeString(opts.NodeColor)))

	for _, n := range g.Nodes {
		p := pos[n.ID]
		opacity := OpacityVisible
		if vis != nil && !vis.Nodes[n.ID] {
			opacity = OpacityHiddenNode
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" opacity="%.2f"/>
`, p.X, p.Y, NodeRadius(n.Weight), opacity))
	}
	sb.WriteString("</g>\n")

	if opts.Labels {
		sb.WriteString(`<g font-size="12px" font-family="sans-serif">` + "\n")
		for _, n := range g.Nodes {
			p := pos[n.ID]
			opacity := OpacityVisible
			if vis != nil && !vis.Nodes[n.ID] {
				opacity = OpacityHiddenNode
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" opacity="%.2f">%s</text>
`, p.X+10, p.Y, opacity, html.EscapeString(n.ID)))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
