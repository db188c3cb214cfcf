// Package config loads the edgekit configuration from YAML files,
// EDGEKIT_-prefixed environment variables, and CLI flags, in rising
// order of precedence, and validates the result.
package config
