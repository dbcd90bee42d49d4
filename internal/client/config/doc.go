// Package config loads runtime configuration for the conciencia CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or CONCIENCIA_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-d string   path of the local SQLite state database
//	-t int      per-request timeout (seconds)
//	-z string   timezone used to pick "today"
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "conciencia.db",
//	  "request_timeout": "10s",
//	  "timezone": "Europe/Madrid",
//	  "log_level": "warn"
//	}
package config
