// Package config handles configuration loading for campus-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  access_secret: "${CAMPUS_ACCESS_SECRET}"
//	  refresh_secret: "${CAMPUS_REFRESH_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	auth:
//	  access_token_ttl: "15m"
//	  refresh_token_ttl: "168h"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//	  environment: "production"
//
// Database settings:
//
//	database:
//	  path: "/var/lib/campus/campus.db"
//
// Mail settings (contact form transport):
//
//	mail:
//	  enabled: true
//	  host: "smtp.gmail.com"
//	  port: 587
//	  username: "${CAMPUS_SMTP_USER}"
//	  password: "${CAMPUS_SMTP_PASS}"
//	  to: "office@example.edu"
//
// PDF settings (study material directory):
//
//	pdfs:
//	  dir: "./pdfs"
//
// Logging settings:
//
//	logging:
//	  level: "info"
//	  format: "text"
package config
