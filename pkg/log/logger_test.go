// Unit tests for the logger
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newTestLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := New("test")
	l.SetWriter(buf)
	l.SetColorize(false)
	return l, buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger()
	l.SetLevel(WARN)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below WARN leaked through: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("WARN/ERROR messages missing: %q", out)
	}
}

func TestTextFormat(t *testing.T) {
	l, buf := newTestLogger()
	l.Info("generated %d layers", 250)

	out := buf.String()
	if !strings.Contains(out, "[INFO ]") {
		t.Errorf("missing level tag: %q", out)
	}
	if !strings.Contains(out, "test: generated 250 layers") {
		t.Errorf("missing prefixed message: %q", out)
	}
}

func TestFieldsSortedInTextOutput(t *testing.T) {
	l, buf := newTestLogger()
	l.InfoFields("done", Fields{"layers": 250, "final_e": "123.45"})

	out := buf.String()
	if !strings.Contains(out, "{final_e=123.45, layers=250}") {
		t.Errorf("fields not sorted or missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	l, buf := newTestLogger()
	l.SetFormat(FormatJSON)
	l.InfoFields("done", Fields{"layers": 250})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "INFO" || entry["logger"] != "test" || entry["message"] != "done" {
		t.Errorf("unexpected JSON entry: %v", entry)
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok || fields["layers"] != float64(250) {
		t.Errorf("missing fields: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"ERROR", ERROR},
		{"bogus", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithPrefix(t *testing.T) {
	l, buf := newTestLogger()
	sub := l.WithPrefix("sequencer")
	sub.Info("hello")

	if !strings.Contains(buf.String(), "sequencer: hello") {
		t.Errorf("prefix not applied: %q", buf.String())
	}
}
