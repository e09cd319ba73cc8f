package records

import (
	"fmt"
	"sort"
	"strings"
)

// Parser converts raw text into records.
type Parser func(text string, opts Options) ([]Record, error)

type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}

	r.parsers[FormatCSV] = func(text string, opts Options) ([]Record, error) {
		if opts.Delimiter == 0 {
			opts.Delimiter = ','
		}
		return ParseDelimited(text, opts)
	}
	r.parsers[FormatTSV] = func(text string, opts Options) ([]Record, error) {
		opts.Delimiter = '\t'
		return ParseDelimited(text, opts)
	}
	r.parsers[FormatJSON] = ParseJSON
	r.parsers[FormatAuto] = func(text string, opts Options) ([]Record, error) {
		return r.parsers[Detect(text)](text, opts)
	}

	return r
}

func (r *Registry) Get(name string) (Parser, error) {
	if name == "" {
		name = FormatAuto
	}
	fn, ok := r.parsers[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (available: %v)", name, r.List())
	}
	return fn, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect picks json when the trimmed text opens a list, csv otherwise.
func Detect(text string) string {
	if strings.HasPrefix(strings.TrimSpace(text), "[") {
		return FormatJSON
	}
	return FormatCSV
}

var defaultRegistry = NewRegistry()

// Parse parses text with the parser named by opts.Format.
func Parse(text string, opts Options) ([]Record, error) {
	p, err := defaultRegistry.Get(opts.Format)
	if err != nil {
		return nil, err
	}
	return p(text, opts)
}
