package config

import (
	"sort"

	"github.com/san-kum/tempograph/internal/graph"
)

// Presets are role assignments for common column conventions.
var Presets = map[string]graph.Roles{
	"edges":     {Source: "source", Target: "target"},
	"weighted":  {Source: "source", Target: "target", Weight: "weight"},
	"temporal":  {Source: "source", Target: "target", Weight: "weight", Interval: "year"},
	"citations": {Source: "citing", Target: "cited", Interval: "year"},
	"transfers": {Source: "from", Target: "to", Weight: "amount", Interval: "period"},
}

func GetPreset(name string) (graph.Roles, bool) {
	r, ok := Presets[name]
	return r, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
