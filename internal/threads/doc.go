// Package threads takes best-effort snapshots of live goroutines and renders
// their stacks for crash reports.
//
// A snapshot is a point-in-time read of every goroutine's stack taken with
// runtime.Stack. It holds no lock shared with application goroutines, so the
// result may be stale by the time it is inspected: goroutines may have
// started or exited in between. Every failure while capturing, parsing or
// rendering degrades to "not found".
//
// Goroutines have no names of their own. A goroutine can register one with
// [SetName]; goroutine 1 is always reported as "main" unless it registered a
// different name. The name registry is process-wide: capture engines name
// and look up goroutines that no client handle ever sees. It holds names
// only, never callback or binding state.
package threads
