// Package config loads runtime configuration for the FoodLink client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-s string   path of the local session database
//	-t int      per-command timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds. Absent keys keep their previous value:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000/",
//	  "storage_path": "foodlink.db",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
