package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/san-kum/tempograph/internal/export"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/logger"
	"github.com/san-kum/tempograph/internal/records"
)

const (
	metadataFile = "metadata.json"
	edgesFile    = "edges.csv"
	nodesFile    = "nodes.csv"
)

type Store struct {
	baseDir string
	log     *log.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: logger.Discard()}
}

func (s *Store) WithLogger(l *log.Logger) *Store {
	s.log = l
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Timestamp time.Time        `json:"timestamp"`
	Roles     graph.Roles      `json:"roles"`
	Nodes     int              `json:"nodes"`
	Edges     int              `json:"edges"`
	Skipped   int              `json:"skipped"`
	Range     *graph.TimeRange `json:"range,omitempty"`
}

var newRunID = func(name string) string {
	return fmt.Sprintf("%s_%s", sanitize(name), uuid.NewString()[:8])
}

// Save writes metadata, the edge list and the node list of g into a new run
// directory. A run that fails part way is removed.
func (s *Store) Save(name string, g *graph.Graph) (string, error) {
	if name == "" {
		name = "graph"
	}
	runID := newRunID(name)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Roles:     g.Roles,
		Nodes:     len(g.Nodes),
		Edges:     len(g.Edges),
		Skipped:   g.Skipped,
		Range:     g.Range,
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, edgesFile), func(w io.Writer) error {
			return export.WriteEdgesCSV(w, g)
		})
	}
	if err == nil {
		err = writeFile(filepath.Join(runDir, nodesFile), func(w io.Writer) error {
			return export.WriteNodesCSV(w, g)
		})
	}
	if err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.log.Warn("failed to remove partial run", "dir", runDir, "err", rmErr)
		}
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}

	s.log.Info("run saved", "id", runID, "nodes", meta.Nodes, "edges", meta.Edges)
	return runID, nil
}

// writeFile creates path, fills it with fn and reports the first of the write
// and close errors.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, name)
}

// List returns all runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadGraph rebuilds a saved graph by mapping its stored edge list again.
func (s *Store) LoadGraph(runID string) (*graph.Graph, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, edgesFile))
	if err != nil {
		return nil, err
	}

	opts := records.DefaultOptions()
	opts.Format = records.FormatCSV
	recs, err := records.Parse(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	roles := graph.Roles{Source: "source", Target: "target"}
	if meta.Roles.Weight != "" {
		roles.Weight = "weight"
	}
	if meta.Roles.Interval != "" {
		roles.Interval = "interval"
	}

	// an empty run still has a header, but no records to take a schema from
	if len(recs) == 0 {
		return &graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}, Range: meta.Range, Roles: meta.Roles, Skipped: meta.Skipped}, nil
	}

	g, err := graph.Map(recs, roles)
	var d *graph.IntervalResolutionDeferred
	switch {
	case errors.As(err, &d) && meta.Range != nil:
		g, err = d.Resolve(meta.Range.Min, meta.Range.Max)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	g.Roles = meta.Roles
	g.Skipped = meta.Skipped
	if meta.Range != nil {
		r := *meta.Range
		g.Range = &r
	}
	return g, nil
}

func (s *Store) Delete(runID string) error {
	dir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		return err
	}
	return os.RemoveAll(dir)
}
