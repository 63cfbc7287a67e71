// Package clock provides a tiny time abstraction.
//
// Fan-out and sweep logic must never call time.Now() directly; they take the
// Clocker interface so tests can pin "now" and assert exact fire times.
package clock
