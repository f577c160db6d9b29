// Package config handles configuration loading for nesie-web.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from NESIE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/nesie/web.yaml
//  3. ~/.config/nesie/web.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	backend:
//	  api_url: "${NESIE_API_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	backend:
//	  timeout: "15s"
//	session:
//	  ttl: "168h"
//
// Supported units: ns, us, ms, s, m, h
package config
