package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetColors(false)
	defer SetLogOutput(nil)
	defer SetLogLevel(LevelInfo)

	SetLogLevel(LevelInfo)
	DebugLog("hidden %d", 1)
	InfoLog("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "[INFO]  shown 2") {
		t.Errorf("expected info message, got %q", out)
	}

	buf.Reset()
	SetQuiet(true)
	if !IsQuiet() {
		t.Error("expected quiet mode to be reported")
	}
	WarnLog("warning")
	ErrorLog("failure")

	out = buf.String()
	if strings.Contains(out, "warning") {
		t.Errorf("warning should be filtered in quiet mode: %q", out)
	}
	if !strings.Contains(out, "[ERROR] failure") {
		t.Errorf("expected error message, got %q", out)
	}
}

func TestDefaultStorePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	got := DefaultStorePath()
	if got != "/home/tester/.tntisdead.db" {
		t.Errorf("expected store under home, got %s", got)
	}
}
