package config

import (
	"os"
	"time"

	"github.com/dsmmcken/osh/internal/oshlog"
)

// defaultMode is the built-in fallback query mode for `search`.
const defaultMode = "all"

// ResolveMode determines the default query mode for `search`.
// Precedence:
//  1. flagMode (--mode, if explicitly set)
//  2. envMode (OSH_DEFAULT_MODE)
//  3. config.toml default_mode
//  4. built-in default: "all"
func ResolveMode(flagMode, envMode string) string {
	if flagMode != "" {
		return flagMode
	}
	if envMode != "" {
		return envMode
	}
	if cfg, err := Load(); err == nil && cfg.DefaultMode != "" {
		return cfg.DefaultMode
	}
	return defaultMode
}

// ResolveLockTimeout determines the advisory-lock wait bound threaded
// into oshlog.Insert / ReverseScan / ForwardWrite.
// Precedence:
//  1. flagSeconds (--lock-timeout, if > 0)
//  2. envSeconds (OSH_LOCK_TIMEOUT_SECONDS, if > 0)
//  3. config.toml lock_timeout_seconds
//  4. built-in default: oshlog.DefaultLockTimeout
func ResolveLockTimeout(flagSeconds, envSeconds int) time.Duration {
	if flagSeconds > 0 {
		return time.Duration(flagSeconds) * time.Second
	}
	if envSeconds > 0 {
		return time.Duration(envSeconds) * time.Second
	}
	if cfg, err := Load(); err == nil && cfg.LockTimeout > 0 {
		return time.Duration(cfg.LockTimeout) * time.Second
	}
	return oshlog.DefaultLockTimeout
}

// ResolveHomePrefix determines the home-directory string the preview
// formatter substitutes with "~", letting history recorded on another
// machine's home directory still prettify correctly on this one.
// Precedence:
//  1. config.toml home_prefix
//  2. os.UserHomeDir()
func ResolveHomePrefix() string {
	if cfg, err := Load(); err == nil && cfg.HomePrefix != "" {
		return cfg.HomePrefix
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
