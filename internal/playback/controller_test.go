package playback_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/playback"
	"github.com/san-kum/tempograph/internal/session"
)

// stepScheduler captures the scheduled tick so specs can fire it by hand.
type stepScheduler struct {
	mu        sync.Mutex
	tick      func()
	cancelled int
}

func (s *stepScheduler) Schedule(_ time.Duration, tick func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = tick
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.cancelled++
	}
}

func (s *stepScheduler) fire() {
	s.mu.Lock()
	tick := s.tick
	s.mu.Unlock()
	if tick != nil {
		tick()
	}
}

func newSession(text string, roles graph.Roles) *session.Session {
	s := session.New()
	Expect(s.Load(text)).To(Succeed())
	_, err := s.Map(roles)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Controller", func() {
	var (
		sess   *session.Session
		sched  *stepScheduler
		frames []playback.Frame
		ctrl   *playback.Controller
	)

	BeforeEach(func() {
		sess = newSession("s,t,y\na,b,2020\nb,c,2021\nc,d,2022\n", graph.Roles{Source: "s", Target: "t", Interval: "y"})
		sched = &stepScheduler{}
		frames = nil
		ctrl = playback.New(sess,
			playback.WithScheduler(sched),
			playback.OnTick(func(f playback.Frame) { frames = append(frames, f) }),
		)
	})

	It("starts stopped with the default interval", func() {
		Expect(ctrl.State()).To(Equal(playback.Stopped))
		Expect(playback.New(sess).Interval()).To(Equal(time.Second))
	})

	It("toggles between running and stopped", func() {
		state, err := ctrl.Toggle()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(playback.Running))

		state, err = ctrl.Toggle()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(playback.Stopped))
		Expect(sched.cancelled).To(Equal(1))
	})

	It("advances the cursor by one per tick and reports visibility", func() {
		_, err := ctrl.Toggle()
		Expect(err).NotTo(HaveOccurred())

		sched.fire()
		Expect(sess.Cursor()).To(Equal(2021))
		Expect(frames).To(HaveLen(1))
		Expect(frames[0].Cursor).To(Equal(2021))
		Expect(frames[0].Visibility.VisibleEdges()).To(Equal(2))
	})

	It("wraps from the range max to the range min", func() {
		_, err := sess.Seek(2022)
		Expect(err).NotTo(HaveOccurred())
		_, err = ctrl.Toggle()
		Expect(err).NotTo(HaveOccurred())

		sched.fire()
		Expect(sess.Cursor()).To(Equal(2020))
		Expect(frames[0].Visibility.VisibleNodes()).To(Equal(2))
	})

	It("keeps the cursor and ignores stale ticks after stopping", func() {
		_, _ = ctrl.Toggle()
		sched.fire()
		_, _ = ctrl.Toggle()

		sched.fire()
		Expect(sess.Cursor()).To(Equal(2021))
		Expect(frames).To(HaveLen(1))
	})

	It("ignores ticks from an earlier run after a restart", func() {
		_, _ = ctrl.Toggle()
		stale := sched.tick
		_, _ = ctrl.Toggle()
		_, _ = ctrl.Toggle()

		stale()
		Expect(frames).To(BeEmpty())

		sched.fire()
		Expect(frames).To(HaveLen(1))
	})

	It("refuses to start without a time range", func() {
		plain := newSession("source,target\na,b\n", graph.Roles{Source: "source", Target: "target"})
		c := playback.New(plain, playback.WithScheduler(sched))

		state, err := c.Toggle()
		Expect(err).To(MatchError(playback.ErrNoRange))
		Expect(state).To(Equal(playback.Stopped))
	})

	It("advances on demand while stopped", func() {
		f, err := ctrl.Advance()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Cursor).To(Equal(2021))
		Expect(ctrl.State()).To(Equal(playback.Stopped))
		Expect(frames).To(BeEmpty())
	})

	Describe("Next", func() {
		r := graph.TimeRange{Min: 5, Max: 7}

		DescribeTable("stepping",
			func(t, want int) {
				Expect(playback.Next(t, r)).To(Equal(want))
			},
			Entry("inside", 5, 6),
			Entry("at max", 7, 5),
			Entry("beyond max", 9, 5),
			Entry("below min", 1, 5),
		)
	})

	Context("with the ticker scheduler", func() {
		It("fires until stopped and never after", func() {
			var mu sync.Mutex
			ticks := 0
			c := playback.New(sess,
				playback.WithInterval(5*time.Millisecond),
				playback.OnTick(func(playback.Frame) {
					mu.Lock()
					ticks++
					mu.Unlock()
				}),
			)
			count := func() int {
				mu.Lock()
				defer mu.Unlock()
				return ticks
			}

			_, err := c.Toggle()
			Expect(err).NotTo(HaveOccurred())
			Eventually(count).WithTimeout(time.Second).Should(BeNumerically(">=", 3))

			c.Stop()
			stopped := count()
			Consistently(count).WithDuration(50 * time.Millisecond).Should(Equal(stopped))
			Expect(c.State()).To(Equal(playback.Stopped))
		})
	})
})
