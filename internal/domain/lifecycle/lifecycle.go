// Package lifecycle holds shared lifecycle constants for graceful shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds how long shutdown hooks wait for in-flight work.
const DefaultTimeout = 10 * time.Second
