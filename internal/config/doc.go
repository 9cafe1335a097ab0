// Package config loads, normalizes, and validates slidedeck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SLIDEDECK_SERVER_URL after exporting any .env file found in the working
// directory. Always obtain settings through this package so downstream code
// receives trimmed endpoint URLs, canonical log formats, and clear validation
// errors.
package config
