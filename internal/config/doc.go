// Package config loads the bridge's runtime settings from the environment,
// optionally seeded from a ".env" file in the working directory.
package config
