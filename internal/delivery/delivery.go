// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running transport server started by the application
// container. Serve blocks until the server stops; shutdown is handled by
// the server's own lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
