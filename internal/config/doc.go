// Package config loads, normalizes, and validates podcastctl configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the PODCASTCTL_API_URL environment
// override. The Config type centralizes the service address, per-call
// timeouts, polling cadence, playback command, and logging settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
