package testutil

import (
	"testing"
	"time"
)

// Eventually polls fn every interval until it returns true, failing the
// test with msg once timeout elapses.
func Eventually(t testing.TB, timeout, interval time.Duration, fn func() bool, msg string) {
	t.Helper()
	if interval <= 0 {
		interval = 5 * time.Millisecond
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !fn() {
		select {
		case <-deadline.C:
			if msg == "" {
				msg = "condition not met before timeout"
			}
			t.Fatalf("%s after %s", msg, timeout)
		case <-ticker.C:
		}
	}
}
