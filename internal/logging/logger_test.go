// SPDX-License-Identifier: EPL-2.0

package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ik5/chanfix/internal/config"
	"github.com/ik5/chanfix/internal/logging"
)

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("converted", logging.FieldPath, "Guitar (dualmono).wav")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logger wrote a debug line: %q", out)
	}
	if !strings.Contains(out, "msg=converted") || !strings.Contains(out, `path="Guitar (dualmono).wav"`) {
		t.Errorf("console output = %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Errorf("info logger added source: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "JSON", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("classified", logging.FieldRunID, "abc", logging.Error(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "classified" || entry["run_id"] != "abc" || entry["error"] != "boom" {
		t.Errorf("json entry = %v", entry)
	}
	if _, ok := entry["source"]; !ok {
		t.Error("debug logger did not add source")
	}
}

func TestNewRejects(t *testing.T) {
	t.Parallel()

	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Error("New(format=xml) error = nil")
	}
	if _, err := logging.New(logging.Options{Level: "chatty"}); err == nil {
		t.Error("New(level=chatty) error = nil")
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Logging.Format = "json"

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	logger.Info("hello")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("NewFromConfig() output = %q, want JSON", buf.String())
	}

	if _, err := logging.NewFromConfig(nil, &buf); err != nil {
		t.Errorf("NewFromConfig(nil) error = %v", err)
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	l := logging.OrNop(nil)
	if l == nil {
		t.Fatal("OrNop(nil) = nil")
	}
	l.Error("discarded")

	nop := logging.NewNop()
	if logging.OrNop(nop) != nop {
		t.Error("OrNop() replaced a non-nil logger")
	}
}
