// Package config loads and validates the calendard service configuration.
//
// Configuration is a YAML file with ${VAR} environment expansion for
// secrets (provider API keys, database password). Defaults are applied
// for every optional field; required fields fail validation with a
// field-qualified error.
package config
