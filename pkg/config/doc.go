// Package config defines the service configuration: YAML file loading,
// defaults, validation, IDEAFORGE_* environment overrides, and hot
// reload of the config file.
package config
