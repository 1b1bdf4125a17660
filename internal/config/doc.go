// Package config loads, normalizes, and validates textstats configuration.
//
// Settings are resolved in layers: repository defaults, the profile selected
// by TEXTSTATS_ENV (development, production or testing), an optional TOML
// file, and finally TEXTSTATS_* environment overrides. The resulting Config is
// built once by the command and passed down explicitly; there is no
// process-wide instance.
package config
