// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeScan()
	if err := c.normalizeLedger(); err != nil {
		return err
	}
	c.normalizeReorder()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Extensions = normalizeExtensions(c.Scan.Extensions)
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = DefaultExtensions()
	}
	c.Scan.AnalysisOnlyExtensions = normalizeExtensions(c.Scan.AnalysisOnlyExtensions)

	c.Scan.HiddenFiles = strings.ToLower(strings.TrimSpace(c.Scan.HiddenFiles))
	if c.Scan.HiddenFiles == "" {
		c.Scan.HiddenFiles = defaultHiddenFiles
	}
}

func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func (c *Config) normalizeLedger() error {
	if strings.TrimSpace(c.Ledger.Path) == "" {
		c.Ledger.Path = defaultLedgerPath
	}
	var err error
	if c.Ledger.Path, err = expandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeReorder() {
	if len(c.Reorder.Categories) == 0 {
		c.Reorder.Categories = DefaultCategories()
		return
	}
	for i := range c.Reorder.Categories {
		cat := &c.Reorder.Categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		keywords := make([]string, 0, len(cat.Keywords))
		for _, kw := range cat.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		cat.Keywords = keywords
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
