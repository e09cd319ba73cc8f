package playback

import (
	"sync"
	"time"
)

// Scheduler runs tick periodically until the returned cancel func is called.
type Scheduler interface {
	Schedule(interval time.Duration, tick func()) (cancel func())
}

// TickerScheduler fires ticks from a single goroutine driven by a time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Schedule(interval time.Duration, tick func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	return func() { once.Do(func() { close(stop) }) }
}

// ManualScheduler never fires; the owner advances the controller itself,
// typically from an event loop that already has its own clock.
type ManualScheduler struct{}

func (ManualScheduler) Schedule(time.Duration, func()) func() {
	return func() {}
}
