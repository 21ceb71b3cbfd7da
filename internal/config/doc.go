// Package config loads steplens.toml and resolves the effective settings.
//
// Values are layered, lowest priority first: built-in defaults, the config
// file, STEPLENS_* environment variables, then command-line flags. Resolve
// records where each value came from so "steplens config debug" can show it.
package config
