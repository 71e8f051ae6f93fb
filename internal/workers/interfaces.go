// Package workers runs the client's background jobs.
//
// A [Worker] is started with a context and stopped explicitly; [Workers]
// starts a group in order and stops it in reverse order.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block. Stop blocks until the job has fully exited and is
// safe to call when the job is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
