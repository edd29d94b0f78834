// Package state owns the view state userdesk renders.
//
// # Overview
//
// The Store tracks two independent operation slots (create user, fetch
// user), each an Async value that is idle, loading, succeeded, or failed.
// It reacts to connectivity changes and runs the success toast countdown.
//
// # Concurrency Model
//
// All transitions run on a single owner goroutine supplied as an Executor
// (Loop in production). Public methods post work and return immediately:
//
//	Caller                 Owner loop                  Service goroutine
//	──────                 ──────────                  ─────────────────
//	store.FetchUser(2) ──> gen++, Loading, publish ──> users.FetchUser()
//	                                                         │
//	                       settle(gen, result) <─────────────┘
//	                       (dropped unless gen is current)
//
// Connectivity callbacks and toast timer callbacks arrive on other
// goroutines and are posted to the loop the same way, so no store field
// is ever written concurrently. Snapshot readers on other goroutines get
// the last published copy under a read lock.
//
// # Generations
//
// Each slot carries a counter bumped whenever the slot is invoked, forced
// into the offline failure, or reset. A service result is applied only if
// the generation it was issued under is still current, so:
//
//   - A newer invocation always wins over a slower older one
//   - A disconnect that forces "No internet connection" is never
//     overwritten by the request that was in flight
//   - A reset slot stays idle
//
// In-flight requests are not aborted; their results are simply dropped.
//
// # Toast
//
// Every success shows the toast and arms a single countdown (3 seconds by
// default). Arming again cancels the previous countdown, so N quick
// successes produce one dismissal, timed from the last. The countdown uses
// github.com/benbjohnson/clock so tests can drive it with a mock clock.
//
// # Subscriptions
//
// Subscribe callbacks run synchronously on the owner goroutine after each
// transition, in order. The rendering layer forwards them to its own event
// loop and never mutates state except through the Store methods.
package state
