// Package config loads framewatch settings from a TOML file.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/framewatch/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty/non-positive, use defaults
//
// # TOML Format
//
//	source = "https://mail.example.test/inbox/abc"  # URL, file:// URL or path
//	interval_ms = 5000          # optional; absent or <= 0 disables polling
//	revert_delay_ms = 5000      # how long "Copied!" stays visible
//	copy_text = "abc@mail.example.test"  # defaults to source
//	clipboard = "auto"          # auto, system, osc52, none
//	theme = "Dracula"
//	log_file = "~/.local/state/framewatch/framewatch.log"
//	log_level = "info"
//	request_timeout_ms = 5000
//
// Tilde expansion is applied to the config path and log_file.
//
// A missing interval is not an error: the poller simply stays idle. Load
// only fails on unreadable files and malformed TOML; an empty source is
// reported separately by Validate so flags can fill it in first.
package config
