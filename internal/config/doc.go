// Package config loads the namelist configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/namelist/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:5000"
//	request_timeout = 5     # seconds
//	refresh_seconds = 0     # 0 disables auto-refresh in the TUI
//	log_level = "info"      # debug, info, warn, error
//	log_format = "console"  # console or json
//	log_file = "~/.local/state/namelist/namelist.log"
//
// Every field is optional. Strings are trimmed and tilde expansion is
// applied to log_file.
//
// # Error Handling
//
// A missing file is not an error. Unreadable files, invalid TOML and
// unknown log levels or formats are returned wrapped with "open config",
// "read config" or "parse config" so the CLI can print them and exit.
//
// Command-line flags (--api, --debug, --refresh) are applied by the caller
// after Load returns; this package knows nothing about them.
package config
