// Package testutil holds helpers shared by quizdoc tests.
package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test context when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled when the test ends or timeout elapses,
// whichever comes first. The go test -timeout deadline shortens it too.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if dt, isT := t.(interface{ Deadline() (time.Time, bool) }); isT {
		if testDeadline, ok := dt.Deadline(); ok && testDeadline.Add(-time.Second).Before(deadline) {
			deadline = testDeadline.Add(-time.Second)
		}
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)
	return ctx
}
