//go:build linux

package platform

import (
	"os"
	"strings"
	"testing"
)

func TestLinuxAutostartRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	service := NewService()

	if err := service.EnableAutostart("FitSlots", "/opt/fit slots/fitslots"); err != nil {
		t.Fatalf("EnableAutostart() error = %v", err)
	}
	enabled, err := service.AutostartEnabled("FitSlots")
	if err != nil || !enabled {
		t.Fatalf("AutostartEnabled() = %v, %v, want true", enabled, err)
	}

	path, err := NewService().(*platformService).desktopFilePath("FitSlots")
	if err != nil {
		t.Fatalf("desktopFilePath() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read desktop entry: %v", err)
	}
	if !strings.Contains(string(data), `Exec="/opt/fit slots/fitslots" --minimized`) {
		t.Fatalf("desktop entry missing exec line:\n%s", data)
	}

	if err := service.DisableAutostart("FitSlots"); err != nil {
		t.Fatalf("DisableAutostart() error = %v", err)
	}
	if enabled, _ := service.AutostartEnabled("FitSlots"); enabled {
		t.Fatal("autostart still enabled")
	}
	if err := service.DisableAutostart("FitSlots"); err != nil {
		t.Fatalf("second DisableAutostart() error = %v", err)
	}
}
