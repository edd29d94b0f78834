// Package config loads userdesk's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/userdesk/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	base_url = "https://reqres.in/api"
//	api_key = "reqres-free-v1"
//	request_timeout = "30s"
//	probe_address = "reqres.in:443"
//	probe_interval = "5s"
//	toast_duration = "3s"
//	requests_per_second = 0    # 0 disables client-side pacing
//	log_level = "info"         # debug | info | warn | error
//	log_format = "console"     # console | json
//	log_file = "~/.local/state/userdesk/userdesk.log"
//
// Durations use Go syntax (time.ParseDuration) and must be positive.
// Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Values that parse but cannot be used (wrapped ErrInvalidValue)
//
// The config package is stateless: it loads once at startup and returns
// a Config value. No global state or singleton patterns are used.
package config
