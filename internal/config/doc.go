// Package config handles configuration loading and merging for conform.
//
// # Configuration Precedence
//
// Each setting is resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--tests, --validator, --draft, --format, ...)
//  2. Environment variables (CONFORM_TESTS, CONFORM_VALIDATOR, ...)
//  3. YAML config file (.conform.yaml in the working directory, or
//     $XDG_CONFIG_HOME/conform/.conform.yaml)
//  4. Hardcoded defaults
//
// The resolved value remembers which source it came from, so --debug can
// explain why a setting has the value it has.
//
// # Environment Variables
//
//   - CONFORM_TESTS: corpus path
//   - CONFORM_VALIDATOR: validator backend name
//   - CONFORM_DRAFT: schema draft
//   - CONFORM_EXCLUDE: comma separated file stems to skip
//   - CONFORM_FORMAT: output format
//   - CONFORM_THEME: terminal theme
//   - NO_COLOR: any non-empty value selects the mono theme
//   - CONFORM_DEBUG: set to "true" or "1" for debug logging
package config
