// Package scheduler implements warptimer's one-shot delayed task scheduler.
//
// Tasks are registered with Add and land in a Store bucket keyed by their
// due second. Nothing fires on its own: a driver (see internal/dispatch)
// calls ExecuteDue roughly once per second, which detaches every bucket whose
// due second has passed, earliest first, and invokes each task's callback in
// registration order. A task fires at most once; failures are captured per
// task and reported together once the pass has finished.
//
// The scheduler does not persist state. Pending tasks are lost when the
// process exits.
package scheduler
