// Package config loads ducktail's TOML configuration.
//
// Resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ducktail/config.toml
//  3. If the file doesn't exist, use the built-in defaults
//  4. If the file exists but a field is missing, blank or non-positive, use
//     that field's default
//
// Example file:
//
//	log_path = "/var/log/duck/duck.log"
//	poll_interval = 5          # seconds
//	filter_debounce_ms = 200
//	listen = "127.0.0.1:7488"  # web dashboard
//	tail_lines = 200           # default for `ducktail tail`
//
// A leading ~ in log_path is expanded to the user's home directory. A file
// that exists but cannot be parsed is an error; ducktail does not guess.
//
// Command-line flags take precedence over every value here; the cli package
// applies them after Load returns.
package config
