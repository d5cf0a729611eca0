package notifier

import (
	"sync"
	"time"
)

// Breaker gates delivery attempts so a run does not hammer a delivery
// service that is already down. Each reminder makes one Allow/Record
// round trip: Allow refuses while the breaker is cooling off, and after
// the cool-off lets exactly one probe through until its Record lands.
type Breaker struct {
	mu sync.Mutex

	failThreshold int
	cooldown      time.Duration

	fails    int       // consecutive failures while passing traffic
	openedAt time.Time // zero while closed
	probing  bool      // a post-cooldown probe is in flight
}

func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{failThreshold: threshold, cooldown: cooldown}
}

// Allow reports whether the next delivery attempt may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.openedAt.IsZero() {
		return true
	}
	if time.Since(b.openedAt) < b.cooldown {
		return false
	}
	if b.probing {
		return false
	}
	b.probing = true
	return true
}

// Record feeds the outcome of an allowed attempt back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.fails = 0
		b.openedAt = time.Time{}
		b.probing = false
		return
	}

	if b.probing {
		// failed probe: restart the cool-off
		b.openedAt = time.Now()
		b.probing = false
		return
	}

	b.fails++
	if b.fails >= b.failThreshold {
		b.openedAt = time.Now()
		b.fails = 0
	}
}
