// Package batch maps several inputs concurrently, one session per input.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/logger"
	"github.com/san-kum/tempograph/internal/records"
	"github.com/san-kum/tempograph/internal/session"
	"golang.org/x/sync/errgroup"
)

type Input struct {
	Name string
	Text string
}

type Options struct {
	Parse records.Options
	// Limit bounds the number of inputs mapped at once. Zero means GOMAXPROCS.
	Limit int
	// Bounds resolves deferred mappings. Without it a deferred input fails the batch.
	Bounds *graph.TimeRange
	Log    *log.Logger
}

func DefaultOptions() Options {
	return Options{Parse: records.DefaultOptions(), Log: logger.Discard()}
}

type Summary struct {
	Name     string           `json:"name"`
	Records  int              `json:"records"`
	Nodes    int              `json:"nodes"`
	Edges    int              `json:"edges"`
	Skipped  int              `json:"skipped"`
	Range    *graph.TimeRange `json:"range,omitempty"`
	Deferred bool             `json:"deferred,omitempty"`
	Heaviest string           `json:"heaviest,omitempty"`
	Graph    *graph.Graph     `json:"-"`
}

// Summarize maps every input with roles. Results keep input order; the first
// failure cancels inputs that have not started.
func Summarize(ctx context.Context, inputs []Input, roles graph.Roles, opts Options) ([]Summary, error) {
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	summaries := make([]Summary, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			s, err := summarize(in, roles, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			summaries[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func summarize(in Input, roles graph.Roles, opts Options) (Summary, error) {
	sess := session.New(
		session.WithParseOptions(opts.Parse),
		session.WithLogger(opts.Log.With("input", in.Name)),
	)
	if err := sess.Load(in.Text); err != nil {
		return Summary{}, err
	}

	sum := Summary{Name: in.Name, Records: len(sess.Records())}

	g, err := sess.Map(roles)
	if errors.Is(err, graph.ErrIntervalDeferred) && opts.Bounds != nil {
		sum.Deferred = true
		g, err = sess.ResolveRange(opts.Bounds.Min, opts.Bounds.Max)
	}
	if err != nil {
		return Summary{}, err
	}

	sum.Graph = g
	sum.Nodes = len(g.Nodes)
	sum.Edges = len(g.Edges)
	sum.Skipped = g.Skipped
	sum.Range = g.Range

	best := -1.0
	for _, n := range g.Nodes {
		if n.Weight > best {
			best = n.Weight
			sum.Heaviest = n.ID
		}
	}
	return sum, nil
}
