// Package config loads, defaults, validates, and watches the
// governance layer configuration.
//
// Configuration comes from a YAML file, with AIGOVERNOR_* environment
// variables taking precedence over file values. The loading sequence
// is: parse YAML, apply defaults, apply environment overrides,
// validate.
//
// A Watcher can hot-reload the file so operators adjust cost estimates
// and budget caps without restarting: on every clean reload it hands
// the new Config to a callback, which rebinds the live cost table and
// caps. Rate limiter shapes and the retry policy are fixed for the
// process lifetime.
package config
