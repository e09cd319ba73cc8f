// Package playback advances a time cursor on a fixed cadence.
//
// A Controller is a two-state machine, Stopped and Running, switched with
// Toggle. While running, each tick moves the cursor one step forward and wraps
// to the range minimum after the maximum.
package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/logger"
)

const DefaultInterval = time.Second

// ErrNoRange indicates playback was started on a target without a time range.
var ErrNoRange = errors.New("playback: no time range to play")

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Target owns the cursor. *session.Session implements it.
type Target interface {
	Range() (graph.TimeRange, bool)
	Cursor() int
	Seek(t int) (filter.Visibility, error)
}

// Frame is reported after every tick.
type Frame struct {
	Cursor     int
	Visibility filter.Visibility
}

type Controller struct {
	mu       sync.Mutex
	target   Target
	interval time.Duration
	sched    Scheduler
	onTick   func(Frame)
	log      *log.Logger

	state  State
	cancel func()
	gen    uint64
}

type Option func(*Controller)

func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// OnTick registers a callback invoked after every scheduled tick. It runs
// with the controller locked and must not call back into the controller.
func OnTick(fn func(Frame)) Option {
	return func(c *Controller) { c.onTick = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func New(target Target, opts ...Option) *Controller {
	c := &Controller{
		target:   target,
		interval: DefaultInterval,
		sched:    TickerScheduler{},
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Toggle starts playback when stopped and stops it when running.
func (c *Controller) Toggle() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		c.stopLocked()
		return c.state, nil
	}

	if _, ok := c.target.Range(); !ok {
		return c.state, ErrNoRange
	}

	c.gen++
	gen := c.gen
	c.state = Running
	c.cancel = c.sched.Schedule(c.interval, func() { c.tick(gen) })
	c.log.Debug("playback started", "cursor", c.target.Cursor(), "interval", c.interval)
	return c.state, nil
}

// Stop forces the Stopped state. No tick callback runs after it returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.state != Running {
		return
	}
	c.gen++
	c.state = Stopped
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.log.Debug("playback stopped", "cursor", c.target.Cursor())
}

// Advance performs one tick immediately, regardless of state.
func (c *Controller) Advance() (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advanceLocked()
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running || gen != c.gen {
		return
	}
	frame, err := c.advanceLocked()
	if err != nil {
		c.log.Warn("playback tick failed", "err", err)
		return
	}
	if c.onTick != nil {
		c.onTick(frame)
	}
}

func (c *Controller) advanceLocked() (Frame, error) {
	r, ok := c.target.Range()
	if !ok {
		return Frame{}, ErrNoRange
	}

	next := Next(c.target.Cursor(), r)
	vis, err := c.target.Seek(next)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Cursor: next, Visibility: vis}, nil
}

// Next returns the cursor after t: one step forward, wrapping to r.Min past r.Max.
func Next(t int, r graph.TimeRange) int {
	next := t + 1
	if next > r.Max || next < r.Min {
		return r.Min
	}
	return next
}
