package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitCreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{LogDir: dir, AppName: "fitslots-test"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("reel settled", "reel", "Сила", "index", 2)
	Debug("hidden at info level")

	data, err := os.ReadFile(filepath.Join(dir, "fitslots-test.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "reel settled") {
		t.Fatalf("info message missing from log:\n%s", data)
	}
	if strings.Contains(string(data), "hidden at info level") {
		t.Fatalf("debug message written at info level:\n%s", data)
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Logger = nil
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}

func TestUseWriter(t *testing.T) {
	var buffer bytes.Buffer
	UseWriter(&buffer, log.WarnLevel)
	Info("quiet")
	Warn("sound missing", "cue", "spin")
	if out := buffer.String(); strings.Contains(out, "quiet") || !strings.Contains(out, "sound missing") {
		t.Fatalf("unexpected output %q", out)
	}
}
