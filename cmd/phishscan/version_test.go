package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests version resolution.
func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("getVersion should never return an empty string")
	}

	version = "v1.2.3"
	defer func() { version = "" }()
	if got := getVersion(); got != "v1.2.3" {
		t.Errorf("getVersion = %q, expected ldflags value to win", got)
	}
}

// TestNewVersionCmd tests the version command output.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	out := buf.String()
	if !strings.Contains(out, "phishscan version") {
		t.Errorf("output missing version line: %q", out)
	}
	if !strings.Contains(out, "commit:") || !strings.Contains(out, "built:") {
		t.Errorf("output missing build metadata: %q", out)
	}
}
