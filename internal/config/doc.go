// Package config loads the modhooks application configuration.
//
// Configuration comes from two layers, higher overriding lower:
//
//  1. modhooks.toml (missing file means built-in defaults)
//  2. MODHOOKS_* environment variables
//
// Example file:
//
//	settings_path = "/var/lib/modhooks/ModdingApi.GlobalSettings.json"
//	host_version  = "1.5.78.11833"
//	log_format    = "json"
//	log_level     = "debug"
//	extensions    = ["ext/qol.lua", "ext/benchwarp.lua"]
//	watch         = true
//
// An empty log_level defers to the level stored in the global settings.
package config
