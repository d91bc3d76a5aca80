/*
Package config provides type-safe configuration extraction for flow
editing deployments.

# Overview

Config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches gracefully by returning default
values. SettingsFrom extracts the typed Settings a deployment actually
uses, and ApplyEnv overlays CONVOFLOW_* environment overrides.

# Basic Usage

	cfg, err := config.FromFile("convoflow.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings := config.ApplyEnv(config.SettingsFrom(cfg))

	flows, err := store.NewSQLiteStore(settings.DBPath)

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("30s", "1h30m")
  - int/float64: interpreted as seconds
  - time.Duration: used directly

All accessors return the default value if the key is missing or the
value cannot be converted to the requested type.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
