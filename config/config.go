// Copyright (c) 2025 The PaySplit developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config holds deployment settings for a paysplit node: where the
// ledger database lives, which network payouts broadcast to, and the
// mining fee and unit-scale parameters for the payout gateway.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all node settings.
type Config struct {
	// DataDir is the directory holding the ledger database.
	DataDir string

	// Network selects the chain: "mainnet", "testnet", or "regtest".
	Network string

	// FeeRate is the payout mining fee rate in satoshis per KB.
	// Zero selects the gateway default.
	FeeRate uint64

	// UnitScale converts ledger accounting units to satoshis.
	// Zero means 1:1.
	UnitScale uint64

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:   filepath.Join(home, ".paysplit"),
		Network:   "mainnet",
		FeeRate:   0,
		UnitScale: 1,
		LogLevel:  "info",
	}
}

// LoadConfig reads a key=value config file. Blank lines and lines starting
// with '#' are ignored. Unknown keys are an error. Missing keys keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, n+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "feerate":
			v, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: feerate: %q", ErrInvalidConfigLine, n+1, value)
			}
			cfg.FeeRate = v
		case "unitscale":
			v, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: unitscale: %q", ErrInvalidConfigLine, n+1, value)
			}
			cfg.UnitScale = v
		case "loglevel":
			cfg.LogLevel = value
		default:
			return cfg, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfigLine, n+1, key)
		}
	}

	return cfg, nil
}

// SaveConfig writes the configuration as a key=value file, creating parent
// directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "datadir=%s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network=%s\n", cfg.Network)
	fmt.Fprintf(&b, "feerate=%d\n", cfg.FeeRate)
	fmt.Fprintf(&b, "unitscale=%d\n", cfg.UnitScale)
	fmt.Fprintf(&b, "loglevel=%s\n", cfg.LogLevel)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
