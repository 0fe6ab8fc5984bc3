// Package hold provides short-lived slot holds around the check-then-write
// sequence. The in-process conflict check and the database write are not
// atomic; a hold on the covered grid slots narrows that window so two
// sessions racing for the same slots fail fast instead of both passing
// the pre-check. The database exclusion constraint remains the
// authoritative guard.
package hold

import (
	"context"
	"time"
)

// Release frees an acquired hold. Safe to call more than once.
type Release func()

// Holder acquires temporary holds on a resource's time range.
type Holder interface {
	// Acquire tries to hold [start, end) on the resource. It returns
	// ok=false when any covered slot is already held by someone else.
	Acquire(ctx context.Context, resourceID string, start, end time.Time) (Release, bool, error)
}

// Noop is a Holder that always succeeds. Used when Redis is not
// configured; conflict safety then rests on the pre-check and the
// database constraint alone.
type Noop struct{}

func (Noop) Acquire(context.Context, string, time.Time, time.Time) (Release, bool, error) {
	return func() {}, true, nil
}
