// Package ui provides the Bubble Tea terminal interface for userdesk.
//
// The UI is a thin renderer over state.Store. It never calls the network
// itself: key presses become store operations, and the store's published
// snapshots come back as messages.
//
// # Data Flow
//
//	key press ──> Model.handleKey ──> Store.CreateUser / FetchRandomUser / Reset / DismissToast
//	                                        │
//	                          (owner loop settles the request)
//	                                        │
//	Store.Subscribe callback ──> Program.Send(snapshotMsg) ──> Model.Update ──> View
//
// # Screen
//
//   - Header: logo, online/offline indicator, spinner while a request is
//     in flight, active theme name
//   - Form: name and email text inputs; enter validates with
//     state.FormValid before creating the user
//   - Created / Fetched panels: one per request slot, showing its phase
//     badge and the result or failure message
//   - Banner: the success toast while it is visible, otherwise the
//     current error message
//   - Command bar: short help generated from the key map
//
// Request bindings are disabled while either slot is loading, matching a
// form whose buttons grey out during a call. The theme (ctrl+t) and the
// last submitted name and email are persisted through internal/prefs.
package ui
