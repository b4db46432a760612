// Package config loads, normalizes, and validates docdist configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DOCDIST_TOKEN_POLICY and DOCDIST_LOG_LEVEL.
//
// Always obtain settings through this package so the CLI, logging, and the
// history store agree on paths and canonical option values.
package config
