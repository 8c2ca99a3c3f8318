// Package repository defines the interfaces for the persistence layer.
package repository

// Subscription is a cancellable feed of whole-collection snapshots.
// Each delivered value replaces the previous snapshot entirely; there is no
// incremental patching. Delivery order relative to in-flight manual fetches
// is not guaranteed, so consumers apply last-write-wins semantics.
type Subscription[T any] interface {
	// Updates returns the snapshot channel. The channel is closed after Stop
	// or when the underlying listener fails.
	Updates() <-chan T

	// Stop cancels the subscription and releases the underlying listener.
	// It must be called when the owning component is torn down so callbacks
	// never fire against released state. Safe to call more than once.
	Stop()
}
