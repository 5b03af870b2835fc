package async

import "context"

// Worker is a long running background loop. Run blocks until ctx is done
// and calls done on its way out.
type Worker interface {
	Run(ctx context.Context, done func())
	Shutdown()
}
