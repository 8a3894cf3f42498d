package subscribe

import "time"

type subscriber struct {
	id              int
	interval        time.Duration
	maxEqualLookups int
	callback        func(ChangeEvent)
}

type sampleFunc func() (comparable interface{}, payload interface{}, err error)
type equalFunc func(prev, curr interface{}) bool

// poller owns one periodic sampler, its current subscribers, and the
// baseline needed to detect change tick-over-tick. All of its fields are
// only ever touched from the manager's single dispatch loop goroutine —
// that, not a mutex, is what makes this safe.
type poller struct {
	kind string

	subscribers map[int]*subscriber
	nextSubID   int

	baseInterval             time.Duration
	interval                 time.Duration
	effectiveMaxEqualLookups int

	ticker *time.Ticker
	stopCh chan struct{}

	hasBaseline    bool
	prevComparable interface{}
	prevPayload    interface{}

	sample sampleFunc
	equal  equalFunc
}

func newPoller(kind string, baseInterval time.Duration) *poller {
	return &poller{
		kind:                     kind,
		subscribers:              map[int]*subscriber{},
		baseInterval:             baseInterval,
		interval:                 baseInterval,
		effectiveMaxEqualLookups: -1,
	}
}

// start launches a ticker goroutine that posts a tick closure onto the
// manager's dispatch channel on every fire; it does no work itself, so
// all actual sampling and callback invocation stays serialized on the
// loop goroutine.
func (p *poller) start(interval time.Duration, m *Manager) {
	p.stop()
	p.interval = interval
	p.ticker = time.NewTicker(interval)
	p.stopCh = make(chan struct{})
	ticker := p.ticker
	stop := p.stopCh
	go func() {
		for {
			select {
			case <-ticker.C:
				m.dispatch <- func() { m.pollOnce(p) }
			case <-stop:
				return
			}
		}
	}()
}

func (p *poller) stop() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
}

func (p *poller) running() bool {
	return p.ticker != nil
}

// effectiveInterval is the minimum interval any current subscriber asked
// for, falling back to the poller's base default when unsubscribed down
// to zero (spec.md §4.E: "the poller runs at the minimum requested
// interval").
func effectiveInterval(subs map[int]*subscriber, fallback time.Duration) time.Duration {
	best := time.Duration(0)
	for _, s := range subs {
		if best == 0 || s.interval < best {
			best = s.interval
		}
	}
	if best == 0 {
		return fallback
	}
	return best
}

// effectiveMaxEqualLookups takes the strictest (smallest non-negative)
// maxEqualLookups requested by any current subscriber, since a shared
// poller produces one changed/unchanged verdict per tick and the
// strictest requested comparison is the one most likely to satisfy every
// subscriber's definition of "something changed" (spec.md is silent on
// how this option composes across subscribers of one poller).
func effectiveMaxEqualLookups(subs map[int]*subscriber) int {
	best := -1
	for _, s := range subs {
		if s.maxEqualLookups >= 0 && (best == -1 || s.maxEqualLookups < best) {
			best = s.maxEqualLookups
		}
	}
	return best
}

// selectionEqual implements spec.md §4.E's change comparator: equal iff
// same length and equal pairwise over the first min(maxEqualLookups,
// length) positions (all positions when maxEqualLookups is -1).
func selectionEqual(prev, curr []string, maxEqualLookups int) bool {
	if len(prev) != len(curr) {
		return false
	}
	limit := len(curr)
	if maxEqualLookups >= 0 && maxEqualLookups < limit {
		limit = maxEqualLookups
	}
	for i := 0; i < limit; i++ {
		if prev[i] != curr[i] {
			return false
		}
	}
	return true
}

func equalString(a, b interface{}) bool { return a.(string) == b.(string) }
func equalInt64(a, b interface{}) bool  { return a.(int64) == b.(int64) }
