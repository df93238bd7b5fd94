// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	if err := c.validateReorder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one extension")
	}
	writable := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		writable[ext] = struct{}{}
	}
	for _, ext := range c.Scan.AnalysisOnlyExtensions {
		if _, ok := writable[ext]; ok {
			return fmt.Errorf("scan.analysis_only_extensions: %q is also listed in scan.extensions", ext)
		}
	}
	switch c.Scan.HiddenFiles {
	case HiddenSkip, HiddenArchive:
	default:
		return fmt.Errorf("scan.hidden_files must be %q or %q, got %q", HiddenSkip, HiddenArchive, c.Scan.HiddenFiles)
	}
	return nil
}

func (c *Config) validateLedger() error {
	if c.Ledger.Enabled && c.Ledger.Path == "" {
		return errors.New("ledger.path must be set when the ledger is enabled")
	}
	return nil
}

func (c *Config) validateReorder() error {
	seen := make(map[string]struct{}, len(c.Reorder.Categories))
	for i, cat := range c.Reorder.Categories {
		if cat.Name == "" {
			return fmt.Errorf("reorder.categories[%d]: name must be set", i)
		}
		if strings.ContainsAny(cat.Name, `/\`) || cat.Name == "." || cat.Name == ".." {
			return fmt.Errorf("reorder.categories[%d]: %q is not a plain folder name", i, cat.Name)
		}
		if _, ok := seen[strings.ToLower(cat.Name)]; ok {
			return fmt.Errorf("reorder.categories[%d]: duplicate name %q", i, cat.Name)
		}
		seen[strings.ToLower(cat.Name)] = struct{}{}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
}
