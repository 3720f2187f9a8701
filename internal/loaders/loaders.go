// Package loaders implements the three background reconciliation workers
// that drive the order lifecycle forward between requests: the shipping
// tracker (Sent orders polled against the carrier), delivery completion
// (aged Delivered orders handed to the saga), and the Paid/Delivered CSV
// report uploader. Each loader is single-flight: a tick that begins while
// the previous one is still running logs a warning and does no work.
package loaders

import "sync/atomic"

// singleFlight is the per-loader busy flag. A missed tick is fine;
// duplicated work is not.
type singleFlight struct {
	busy int32
}

// TryAcquire claims the flag, reporting false if a tick already holds it.
// A failed acquire leaves the flag untouched.
func (s *singleFlight) TryAcquire() bool {
	return atomic.CompareAndSwapInt32(&s.busy, 0, 1)
}

// Release clears the flag. Callers must defer this immediately after a
// successful TryAcquire so a cancelled tick still releases it.
func (s *singleFlight) Release() {
	atomic.StoreInt32(&s.busy, 0)
}
