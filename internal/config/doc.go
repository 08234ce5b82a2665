// Package config loads, normalizes, and validates dashforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Always obtain settings through this
// package so downstream code receives sanitized paths, canonical encoder
// selections, and clear validation errors.
package config
