package subscribe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/eaglecooler/core/internal/hostapi"
)

type fakeItem struct {
	id   string
	name string
}

func (f fakeItem) ID() string                { return f.id }
func (f fakeItem) Name() string              { return f.name }
func (f fakeItem) Ext() string               { return "png" }
func (f fakeItem) URL() string               { return "" }
func (f fakeItem) Annotation() string        { return "" }
func (f fakeItem) Width() int                { return 0 }
func (f fakeItem) Height() int               { return 0 }
func (f fakeItem) Size() int64               { return 0 }
func (f fakeItem) Star() (int, bool)         { return 0, false }
func (f fakeItem) ImportedAt() int64         { return 0 }
func (f fakeItem) ModifiedAt() int64         { return 0 }
func (f fakeItem) Tags() []string            { return nil }
func (f fakeItem) Folders() []string         { return nil }
func (f fakeItem) IsDeleted() bool           { return false }

// fakeHost is a mutable, test-controlled hostapi.Host. All fields are
// guarded by mu since pollers read them from the dispatch-loop goroutine
// while tests mutate them from the test goroutine.
type fakeHost struct {
	mu       sync.Mutex
	path     string
	name     string
	items    []hostapi.ItemRecord
	folders  []hostapi.FolderRecord
	identErr error
}

func (h *fakeHost) setPath(p string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.path = p
}

func (h *fakeHost) setItems(ids ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	items := make([]hostapi.ItemRecord, len(ids))
	for i, id := range ids {
		items[i] = fakeItem{id: id, name: id}
	}
	h.items = items
}

func (h *fakeHost) LibraryIdentity() (hostapi.LibraryIdentity, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.identErr != nil {
		return hostapi.LibraryIdentity{}, h.identErr
	}
	return hostapi.LibraryIdentity{Path: h.path, Name: h.name}, nil
}
func (h *fakeHost) HomeDir() (string, error) { return "", nil }
func (h *fakeHost) SelectedItems() ([]hostapi.ItemRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.items, nil
}
func (h *fakeHost) SelectedFolders() ([]hostapi.FolderRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.folders, nil
}
func (h *fakeHost) AllItems() ([]hostapi.ItemRecord, error)     { return nil, nil }
func (h *fakeHost) AllFolders() ([]hostapi.FolderRecord, error) { return nil, nil }
func (h *fakeHost) ItemByID(id string) (hostapi.ItemRecord, bool, error) {
	return nil, false, nil
}
func (h *fakeHost) FolderByID(id string) (hostapi.FolderRecord, bool, error) {
	return nil, false, nil
}
func (h *fakeHost) OnCreate(func(hostapi.Manifest)) {}

// forceTick runs one synchronous poll of the named poller, bypassing its
// real ticker, so tests can drive ticks deterministically.
func forceTick(m *Manager, kind string) {
	m.runSync(func() { m.pollOnce(m.pollers[kind]) })
}

func TestItemSelectionFiresOnChange(t *testing.T) {
	host := &fakeHost{path: "/lib", name: "Lib"}
	host.setItems("a", "b")
	m := New(host)
	defer m.Close()

	var events []ChangeEvent
	var mu sync.Mutex
	release := m.OnItemSelectionChange(func(e ChangeEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}, DefaultSelectionOptions())
	defer release()

	// First tick (from subscribe) only establishes baseline.
	mu.Lock()
	if len(events) != 0 {
		t.Fatalf("expected no event on baseline tick, got %d", len(events))
	}
	mu.Unlock()

	host.setItems("a", "b", "c")
	forceTick(m, pollerItemSelection)

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected exactly one change event, got %d", len(events))
	}
	prev, ok := events[0].Previous.([]interface{ ID() string })
	_ = prev
	_ = ok
}

func TestItemSelectionNoFireWhenUnchanged(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	host.setItems("a", "b")
	m := New(host)
	defer m.Close()

	count := 0
	release := m.OnItemSelectionChange(func(e ChangeEvent) { count++ }, DefaultSelectionOptions())
	defer release()

	forceTick(m, pollerItemSelection)
	forceTick(m, pollerItemSelection)

	if count != 0 {
		t.Fatalf("expected no change events, got %d", count)
	}
}

func TestMaxEqualLookupsIgnoresTrailingPositions(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	host.setItems("a", "b", "z")
	m := New(host)
	defer m.Close()

	count := 0
	release := m.OnItemSelectionChange(func(e ChangeEvent) { count++ }, SelectionOptions{
		Interval: 50 * time.Millisecond, MaxEqualLookups: 2,
	})
	defer release()

	host.setItems("a", "b", "different-tail")
	forceTick(m, pollerItemSelection)

	if count != 0 {
		t.Fatalf("expected trailing-position change beyond N to be ignored, got %d events", count)
	}

	host.setItems("x", "b", "different-tail")
	forceTick(m, pollerItemSelection)
	if count != 1 {
		t.Fatalf("expected change within the first N positions to fire, got %d events", count)
	}
}

func TestCascadeResetOnLibrarySwitch(t *testing.T) {
	host := &fakeHost{path: "/lib1"}
	host.setItems("a", "b")
	m := New(host)
	defer m.Close()

	libraryEvents := 0
	selectionEvents := 0

	releaseLib := m.OnLibraryChange(func(e ChangeEvent) { libraryEvents++ })
	defer releaseLib()
	releaseSel := m.OnItemSelectionChange(func(e ChangeEvent) { selectionEvents++ }, DefaultSelectionOptions())
	defer releaseSel()

	// Switch library and change the selection set in the same moment —
	// the new library's selection baseline should be established without
	// firing a spurious selection-change event.
	host.setPath("/lib2")
	host.setItems("totally", "different", "ids")

	forceTick(m, pollerIdentity)
	if libraryEvents != 1 {
		t.Fatalf("expected exactly one library-change event, got %d", libraryEvents)
	}

	forceTick(m, pollerItemSelection)
	if selectionEvents != 0 {
		t.Fatalf("expected selection poller to re-baseline without firing after cascade reset, got %d events", selectionEvents)
	}

	// A genuine subsequent change against the new baseline should fire.
	host.setItems("totally", "different", "ids", "plus-one")
	forceTick(m, pollerItemSelection)
	if selectionEvents != 1 {
		t.Fatalf("expected a real post-switch change to fire, got %d", selectionEvents)
	}
}

func TestUnsubscribeStopsCallbacks(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	host.setItems("a")
	m := New(host)
	defer m.Close()

	count := 0
	release := m.OnItemSelectionChange(func(e ChangeEvent) { count++ }, DefaultSelectionOptions())

	host.setItems("a", "b")
	forceTick(m, pollerItemSelection)
	if count != 1 {
		t.Fatalf("expected one event before unsubscribe, got %d", count)
	}

	release()

	host.setItems("a", "b", "c")
	// The poller has been stopped by unsubscribe; there is nothing left
	// to force-tick, and no real ticker is running either.
	if m.pollers[pollerItemSelection].running() {
		t.Fatalf("expected poller stopped after last unsubscribe")
	}
	if count != 1 {
		t.Fatalf("expected no further callbacks after unsubscribe, got %d", count)
	}
}

func TestIdentityPollerStopsWhenAllSubscriptionsGone(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	m := New(host)
	defer m.Close()

	release := m.OnItemSelectionChange(func(ChangeEvent) {}, DefaultSelectionOptions())
	idp := m.pollers[pollerIdentity]
	if !idp.running() {
		t.Fatalf("expected identity poller running once any subscription exists")
	}

	release()
	if idp.running() {
		t.Fatalf("expected identity poller stopped once no subscriptions remain")
	}
}

// TestOnLibraryChangeAsFirstSubscriptionStartsIdentityPollerOnce guards
// against ensureIdentityRunning and the subscribe() switch both starting
// the identity poller when OnLibraryChange is the very first subscription
// registered: a start() that did not first stop the running ticker would
// overwrite p.ticker/p.stopCh, orphaning the first ticker's goroutine so it
// never stops on Close.
func TestOnLibraryChangeAsFirstSubscriptionStartsIdentityPollerOnce(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	m := New(host)
	defer m.Close()

	release := m.OnLibraryChange(func(ChangeEvent) {})
	defer release()

	idp := m.pollers[pollerIdentity]
	ticker := idp.ticker
	stopCh := idp.stopCh
	if ticker == nil || stopCh == nil {
		t.Fatalf("expected identity poller to have started")
	}

	// A single stop() must fully retire the poller: if a first, orphaned
	// ticker/goroutine from a double-start survived, running() would still
	// report false here (it only inspects the current ticker/stopCh), but
	// the orphan itself would keep posting to m.dispatch after Close. Close
	// itself would hang once the dispatch buffer filled were that the
	// case, so reaching this point at all is part of the regression check.
	release()
	if idp.running() {
		t.Fatalf("expected identity poller stopped after its only subscriber released")
	}
}

// TestCloseDoesNotLeakIdentityPollerGoroutine exercises the default
// eaglecoolctl subscribe watch path end-to-end with a real ticker
// (OnLibraryChange is always the first subscription there): before the
// identity-poller double-start fix, Close would stop only the second
// ticker, leaving the first ticker's goroutine running forever and
// blocking on m.dispatch once its buffer filled.
func TestCloseDoesNotLeakIdentityPollerGoroutine(t *testing.T) {
	host := &fakeHost{path: "/lib"}

	runtime.Gosched()
	before := runtime.NumGoroutine()

	m := New(host)
	release := m.OnLibraryChange(func(ChangeEvent) {})
	time.Sleep(20 * time.Millisecond)
	release()
	m.Close()

	time.Sleep(20 * time.Millisecond)
	runtime.Gosched()
	after := runtime.NumGoroutine()
	if after > before {
		t.Fatalf("expected no leaked poller goroutines: had %d before, %d after Close", before, after)
	}
}

func TestSubscriberPanicDoesNotStopOtherSubscribers(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	host.setItems("a")
	m := New(host)
	defer m.Close()

	secondCalled := false
	release1 := m.OnItemSelectionChange(func(ChangeEvent) { panic("boom") }, DefaultSelectionOptions())
	defer release1()
	release2 := m.OnItemSelectionChange(func(ChangeEvent) { secondCalled = true }, DefaultSelectionOptions())
	defer release2()

	host.setItems("a", "b")
	forceTick(m, pollerItemSelection)

	if !secondCalled {
		t.Fatalf("expected second subscriber to still be invoked despite first panicking")
	}
}

func TestHostErrorKeepsBaselineAndDoesNotFire(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	m := New(host)
	defer m.Close()

	count := 0
	release := m.OnLibraryConfigChange(func(ChangeEvent) { count++ }, 50*time.Millisecond)
	defer release()

	// No metadata.json exists at /lib, so every tick errors; it must log
	// and skip rather than fire.
	forceTick(m, pollerLibraryConfig)
	forceTick(m, pollerLibraryConfig)
	if count != 0 {
		t.Fatalf("expected no events from a poller that only ever errors, got %d", count)
	}
}

func TestLibraryConfigMtimeFiresOnTouch(t *testing.T) {
	root := t.TempDir()
	metaPath := filepath.Join(root, "metadata.json")
	if err := os.WriteFile(metaPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	host := &fakeHost{path: root}
	m := New(host)
	defer m.Close()

	count := 0
	release := m.OnLibraryConfigChange(func(ChangeEvent) { count++ }, 50*time.Millisecond)
	defer release()

	// Ensure a detectable mtime change (filesystem mtime resolution may
	// be coarser than a tight loop).
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(metaPath, future, future); err != nil {
		t.Fatal(err)
	}
	forceTick(m, pollerLibraryConfig)

	if count != 1 {
		t.Fatalf("expected one mtime-change event, got %d", count)
	}
}

func TestEffectiveIntervalTakesMinimumAcrossSubscribers(t *testing.T) {
	host := &fakeHost{path: "/lib"}
	m := New(host)
	defer m.Close()

	releaseSlow := m.OnItemSelectionChange(func(ChangeEvent) {}, SelectionOptions{Interval: 2 * time.Second, MaxEqualLookups: -1})
	defer releaseSlow()
	if got := m.pollers[pollerItemSelection].interval; got != 2*time.Second {
		t.Fatalf("expected interval 2s with one subscriber, got %v", got)
	}

	releaseFast := m.OnItemSelectionChange(func(ChangeEvent) {}, SelectionOptions{Interval: 100 * time.Millisecond, MaxEqualLookups: -1})
	defer releaseFast()
	if got := m.pollers[pollerItemSelection].interval; got != 100*time.Millisecond {
		t.Fatalf("expected interval lowered to 100ms once a faster subscriber joins, got %v", got)
	}
}

func ExampleManager_OnLibraryChange() {
	host := &fakeHost{path: "/a", name: "A"}
	m := New(host)
	defer m.Close()

	release := m.OnLibraryChange(func(e ChangeEvent) {
		fmt.Println("library changed")
	})
	defer release()
}
