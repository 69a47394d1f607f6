// Package config loads, normalizes, and validates brandsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the BRANDSORT_ROOT environment
// fallback for the default organize root. The Config type centralizes every
// knob the daemon and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
