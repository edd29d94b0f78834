// Package app is the composition root for userdesk.
//
// # Overview
//
// Run loads configuration, builds the logger, wires the long-lived
// components together and hands the terminal to the UI. Every dependency
// is passed explicitly; there are no package-level singletons.
//
// # Wiring
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/userdesk/config.toml
//	       ├─────> logging.New()        zap logger writing to log_file
//	       ├─────> prefs.Load()         Theme and form prefill
//	       ├─────> start()              Long-lived components (below)
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	start():
//	┌──────────────────────────────────────────────┐
//	│ netmon.Monitor    probes probe_address       │
//	│ reqres.Client     fails fast while offline,  │
//	│                   paced by requests_per_sec  │
//	│ reqres.UserService                           │
//	│ state.Loop        owner goroutine            │
//	│ state.Store       subscribed to the monitor  │
//	└──────────────────────────────────────────────┘
//
// The monitor starts probing only after the store has subscribed to it.
// Close tears down in reverse: detach the store, stop probing, stop the
// loop.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Logger cannot open its output
//   - Base URL is not an absolute http(s) URL
//
// Request failures are never fatal. They surface in the store as slot
// failures and are logged by the client and by state.LogFeedback.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{ProbeEvery: 10}); err != nil {
//		log.Fatalf("userdesk failed: %v", err)
//	}
package app
