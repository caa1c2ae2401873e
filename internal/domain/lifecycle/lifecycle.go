// Package lifecycle holds shared timeouts for component start and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds how long a component may take to start or drain
// during fx lifecycle hooks.
const DefaultTimeout = 10 * time.Second
