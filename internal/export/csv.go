package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/tempograph/internal/graph"
)

// EdgeHeader is the column layout written by WriteEdgesCSV.
var EdgeHeader = []string{"source", "target", "weight", "interval"}

// WriteEdgesCSV writes one row per edge; unset weight or interval stay empty.
func WriteEdgesCSV(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(EdgeHeader); err != nil {
		return err
	}
	for _, e := range g.Edges {
		row := []string{e.Source, e.Target, "", ""}
		if e.Weight != nil {
			row[2] = strconv.FormatFloat(*e.Weight, 'f', -1, 64)
		}
		if e.Interval != nil {
			row[3] = strconv.Itoa(*e.Interval)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteNodesCSV(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "weight"}); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if err := cw.Write([]string{n.ID, strconv.FormatFloat(n.Weight, 'f', -1, 64)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
