// Package lifecycle holds shared constants for component start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks such as DB pings and server shutdown.
const DefaultTimeout = 10 * time.Second
