// Package subscribe implements the Change Subscription Manager
// (spec.md §4.E): a single process-wide coordinator owning five
// independent pollers over a push-less host, using single-threaded
// cooperative scheduling and a parent-child cascade-reset protocol.
package subscribe

// ChangeEvent is the payload delivered to every subscriber callback.
type ChangeEvent struct {
	Previous  interface{} `json:"previous"`
	Current   interface{} `json:"current"`
	Timestamp int64       `json:"timestamp"`
}

// LibraryIdentitySnapshot is the library-identity poller's payload shape.
type LibraryIdentitySnapshot struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// MtimeSnapshot is the on-disk pollers' payload shape.
type MtimeSnapshot struct {
	Mtime int64 `json:"mtime"`
}

// Release tears down one subscription. It is the only supported teardown
// and is safe to call more than once.
type Release func()
