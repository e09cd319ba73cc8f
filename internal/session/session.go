// Package session owns the mutable pipeline state: the current records, the
// mapped graph with its range, and the time cursor. Every operation either
// replaces that state completely or leaves it untouched.
package session

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/logger"
	"github.com/san-kum/tempograph/internal/records"
)

var (
	// ErrNoGraph indicates an operation that needs a mapped graph.
	ErrNoGraph = errors.New("session: no graph mapped")

	// ErrNotTemporal indicates the current graph has no time range.
	ErrNotTemporal = errors.New("session: temporal filtering is not active")

	// ErrNothingPending indicates ResolveRange was called without a deferred mapping.
	ErrNothingPending = errors.New("session: no mapping awaiting interval bounds")
)

type Session struct {
	mu        sync.RWMutex
	log       *log.Logger
	parseOpts records.Options
	policy    filter.Policy

	records []records.Record
	fields  []string
	graph   *graph.Graph
	index   *filter.Index
	pending *graph.IntervalResolutionDeferred
	cursor  int
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithParseOptions(opts records.Options) Option {
	return func(s *Session) { s.parseOpts = opts }
}

func WithPolicy(p filter.Policy) Option {
	return func(s *Session) { s.policy = p }
}

func New(opts ...Option) *Session {
	s := &Session{
		log:       logger.Discard(),
		parseOpts: records.DefaultOptions(),
		policy:    filter.PolicyHidden,
		fields:    []string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses text and replaces the held records. The mapped graph is kept
// until the next Map. On error nothing changes.
func (s *Session) Load(text string) error {
	recs, err := records.Parse(text, s.parseOpts)
	if err != nil {
		s.log.Warn("parse failed", "err", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = recs
	s.fields = records.Fields(recs)
	s.pending = nil
	s.log.Debug("records loaded", "records", len(recs), "fields", len(s.fields))
	return nil
}

func (s *Session) Records() []records.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *Session) Fields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Session) SuggestedRoles() graph.Roles {
	return graph.SuggestRoles(s.Fields())
}

// Map maps the held records. A *graph.MissingRoleError leaves the session
// untouched; a *graph.IntervalResolutionDeferred is kept pending until
// ResolveRange is called and is returned as the error.
func (s *Session) Map(roles graph.Roles) (*graph.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := graph.Map(s.records, roles)
	if err != nil {
		var d *graph.IntervalResolutionDeferred
		if errors.As(err, &d) {
			s.pending = d
			s.log.Info("interval bounds required", "field", roles.Interval)
		}
		return nil, err
	}

	s.commit(g)
	return g, nil
}

// ResolveRange completes a deferred mapping with caller-supplied bounds.
func (s *Session) ResolveRange(min, max int) (*graph.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil, ErrNothingPending
	}
	g, err := s.pending.Resolve(min, max)
	if err != nil {
		return nil, err
	}
	s.commit(g)
	return g, nil
}

// Pending reports whether a mapping awaits interval bounds.
func (s *Session) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending != nil
}

// Use installs an already mapped graph, e.g. one loaded from storage.
func (s *Session) Use(g *graph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(g)
}

func (s *Session) commit(g *graph.Graph) {
	s.graph = g
	s.pending = nil
	s.index = filter.NewIndex(g, s.policy)
	s.cursor = 0
	if g.Range != nil {
		s.cursor = g.Range.Min
	}
	s.log.Info("graph mapped", "nodes", len(g.Nodes), "edges", len(g.Edges), "skipped", g.Skipped, "temporal", g.Range != nil)
}

func (s *Session) Graph() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

func (s *Session) Index() *filter.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

func (s *Session) Range() (graph.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil || s.graph.Range == nil {
		return graph.TimeRange{}, false
	}
	return *s.graph.Range, true
}

func (s *Session) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Seek moves the cursor, clamped to the range, and returns the new visibility.
func (s *Session) Seek(t int) (filter.Visibility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTemporal(); err != nil {
		return filter.Visibility{}, err
	}
	s.cursor = s.graph.Range.Clamp(t)
	return s.index.At(s.cursor), nil
}

// Visibility evaluates the current cursor.
func (s *Session) Visibility() (filter.Visibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkTemporal(); err != nil {
		return filter.Visibility{}, err
	}
	return s.index.At(s.cursor), nil
}

func (s *Session) checkTemporal() error {
	if s.graph == nil {
		return ErrNoGraph
	}
	if s.graph.Range == nil {
		return ErrNotTemporal
	}
	return nil
}

func (s *Session) Highlight(keyword string) (filter.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.graph == nil {
		return filter.Highlight{}, ErrNoGraph
	}
	return filter.Keyword(s.graph, keyword), nil
}
