package subscribe

import (
	"log"
	"time"

	"github.com/eaglecooler/core/internal/hostapi"
)

const (
	pollerIdentity       = "identity"
	pollerItemSelection  = "itemSelection"
	pollerFolderSel      = "folderSelection"
	pollerLibraryConfig  = "libraryConfig"
	pollerFolderStruct   = "libraryFolderStructure"
	identityInterval     = time.Second
	defaultSubInterval   = 500 * time.Millisecond
)

// nowMs is the clock used to stamp ChangeEvent.Timestamp; overridable in
// tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Manager is the single process-wide Change Subscription Manager. Every
// mutation of poller/subscriber state happens on its own dispatch-loop
// goroutine, so the whole component behaves as single-threaded
// cooperative scheduling even though tickers run on their own goroutines
// (spec.md §4.E, §5).
type Manager struct {
	host     hostapi.Host
	pollers  map[string]*poller
	dispatch chan func()
	done     chan struct{}
}

// New starts a Manager's dispatch loop. No poller runs until the first
// subscription.
func New(host hostapi.Host) *Manager {
	m := &Manager{
		host:     host,
		pollers:  map[string]*poller{},
		dispatch: make(chan func(), 64),
		done:     make(chan struct{}),
	}

	idp := newPoller(pollerIdentity, identityInterval)
	idp.sample = m.sampleIdentity
	idp.equal = equalString
	m.pollers[pollerIdentity] = idp

	isp := newPoller(pollerItemSelection, defaultSubInterval)
	isp.sample = m.sampleItemSelection
	isp.equal = func(a, b interface{}) bool {
		return selectionEqual(a.([]string), b.([]string), isp.effectiveMaxEqualLookups)
	}
	m.pollers[pollerItemSelection] = isp

	fsp := newPoller(pollerFolderSel, defaultSubInterval)
	fsp.sample = m.sampleFolderSelection
	fsp.equal = func(a, b interface{}) bool {
		return selectionEqual(a.([]string), b.([]string), fsp.effectiveMaxEqualLookups)
	}
	m.pollers[pollerFolderSel] = fsp

	lcp := newPoller(pollerLibraryConfig, defaultSubInterval)
	lcp.sample = m.sampleLibraryConfigMtime
	lcp.equal = equalInt64
	m.pollers[pollerLibraryConfig] = lcp

	lfp := newPoller(pollerFolderStruct, defaultSubInterval)
	lfp.sample = m.sampleLibraryFolderStructureMtime
	lfp.equal = equalInt64
	m.pollers[pollerFolderStruct] = lfp

	go m.loop()
	return m
}

func (m *Manager) loop() {
	for {
		select {
		case fn := <-m.dispatch:
			fn()
		case <-m.done:
			return
		}
	}
}

// runSync posts fn onto the dispatch loop and blocks until it has run,
// giving callers (Subscribe/Unsubscribe) a synchronous API over an
// internally serialized state machine.
func (m *Manager) runSync(fn func()) {
	done := make(chan struct{})
	m.dispatch <- func() {
		fn()
		close(done)
	}
	<-done
}

// pollOnce samples one poller, updates its baseline, and fires subscriber
// callbacks on change. It must only run on the dispatch loop goroutine.
func (m *Manager) pollOnce(p *poller) {
	comparable, payload, err := p.sample()
	if err != nil {
		log.Printf("subscribe: %s poll failed: %v", p.kind, err)
		return
	}

	if !p.hasBaseline {
		p.hasBaseline = true
		p.prevComparable = comparable
		p.prevPayload = payload
		return
	}

	changed := !p.equal(p.prevComparable, comparable)
	prevPayload := p.prevPayload
	p.prevComparable = comparable
	p.prevPayload = payload

	if !changed {
		return
	}

	event := ChangeEvent{Previous: prevPayload, Current: payload, Timestamp: nowMs()}
	m.notify(p, event)

	if p.kind == pollerIdentity {
		m.cascadeReset()
	}
}

func (m *Manager) notify(p *poller, event ChangeEvent) {
	for _, sub := range p.subscribers {
		invokeSafely(sub.callback, event)
	}
}

func invokeSafely(cb func(ChangeEvent), event ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("subscribe: subscriber callback panicked: %v", r)
		}
	}()
	cb(event)
}

// cascadeReset clears every non-identity poller's baseline so its next
// tick re-baselines against the new library without firing a spurious
// change (spec.md §4.E, §8 scenario 6).
func (m *Manager) cascadeReset() {
	for kind, p := range m.pollers {
		if kind == pollerIdentity {
			continue
		}
		p.hasBaseline = false
	}
}

// ensureIdentityRunning starts the identity poller if not already
// running. It runs whenever any subscription — to any poller — exists,
// not only library-change subscribers.
func (m *Manager) ensureIdentityRunning() {
	idp := m.pollers[pollerIdentity]
	if !idp.running() {
		idp.hasBaseline = false
		idp.start(idp.baseInterval, m)
		m.pollOnce(idp)
	}
}

// maybeStopIdentity stops the identity poller once no poller (including
// itself) has any subscriber left.
func (m *Manager) maybeStopIdentity() {
	for _, p := range m.pollers {
		if len(p.subscribers) > 0 {
			return
		}
	}
	idp := m.pollers[pollerIdentity]
	idp.stop()
	idp.hasBaseline = false
}

func (m *Manager) subscribe(kind string, interval time.Duration, maxEqualLookups int, cb func(ChangeEvent)) Release {
	var id int
	m.runSync(func() {
		p := m.pollers[kind]
		isFirst := len(p.subscribers) == 0

		id = p.nextSubID
		p.nextSubID++
		p.subscribers[id] = &subscriber{id: id, interval: interval, maxEqualLookups: maxEqualLookups, callback: cb}
		p.effectiveMaxEqualLookups = effectiveMaxEqualLookups(p.subscribers)

		m.ensureIdentityRunning()

		newInterval := effectiveInterval(p.subscribers, p.baseInterval)
		switch {
		case kind == pollerIdentity:
			// ensureIdentityRunning above already started (and polled) this
			// exact poller; starting it again here would needlessly restart
			// its ticker.
		case isFirst:
			p.hasBaseline = false
			p.start(newInterval, m)
			m.pollOnce(p)
		case newInterval < p.interval:
			p.stop()
			p.start(newInterval, m)
		}
	})

	return func() {
		m.runSync(func() {
			p := m.pollers[kind]
			delete(p.subscribers, id)
			if len(p.subscribers) == 0 {
				p.stop()
				p.hasBaseline = false
			} else {
				p.effectiveMaxEqualLookups = effectiveMaxEqualLookups(p.subscribers)
				newInterval := effectiveInterval(p.subscribers, p.baseInterval)
				if newInterval != p.interval {
					p.stop()
					p.start(newInterval, m)
				}
			}
			m.maybeStopIdentity()
		})
	}
}

// OnLibraryChange subscribes to the library-identity poller (fixed
// 1000ms interval; not configurable per spec.md §4.E).
func (m *Manager) OnLibraryChange(cb func(ChangeEvent)) Release {
	return m.subscribe(pollerIdentity, identityInterval, -1, cb)
}

// SelectionOptions configures a selection-poller subscription.
type SelectionOptions struct {
	Interval        time.Duration
	MaxEqualLookups int
}

// DefaultSelectionOptions returns the spec-mandated defaults: 500ms
// interval, full-sequence comparison.
func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{Interval: defaultSubInterval, MaxEqualLookups: -1}
}

func normalizeInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultSubInterval
	}
	return d
}

// OnItemSelectionChange subscribes to the item-selection poller.
func (m *Manager) OnItemSelectionChange(cb func(ChangeEvent), opts SelectionOptions) Release {
	return m.subscribe(pollerItemSelection, normalizeInterval(opts.Interval), opts.MaxEqualLookups, cb)
}

// OnFolderSelectionChange subscribes to the folder-selection poller.
func (m *Manager) OnFolderSelectionChange(cb func(ChangeEvent), opts SelectionOptions) Release {
	return m.subscribe(pollerFolderSel, normalizeInterval(opts.Interval), opts.MaxEqualLookups, cb)
}

// OnLibraryConfigChange subscribes to the library-document mtime poller.
func (m *Manager) OnLibraryConfigChange(cb func(ChangeEvent), interval time.Duration) Release {
	return m.subscribe(pollerLibraryConfig, normalizeInterval(interval), -1, cb)
}

// OnLibraryFolderStructureChange subscribes to the library-root mtime
// poller.
func (m *Manager) OnLibraryFolderStructureChange(cb func(ChangeEvent), interval time.Duration) Release {
	return m.subscribe(pollerFolderStruct, normalizeInterval(interval), -1, cb)
}

// Close stops every poller and the dispatch loop. It is not itself a
// spec-mandated operation — it exists so a host process can tear the
// manager down cleanly on plugin unload.
func (m *Manager) Close() {
	m.runSync(func() {
		for _, p := range m.pollers {
			p.stop()
		}
	})
	close(m.done)
}
