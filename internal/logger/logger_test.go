package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		withFile  bool
		wantLevel log.Level
	}{
		{name: "stderr only", wantLevel: log.InfoLevel},
		{name: "debug with file", debug: true, withFile: true, wantLevel: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Debug: tt.debug}
			if tt.withFile {
				cfg.File = filepath.Join(t.TempDir(), "logs", "cadence.log")
			}

			l, err := New(cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l.GetLevel() != tt.wantLevel {
				t.Fatalf("level: got %v, want %v", l.GetLevel(), tt.wantLevel)
			}

			if tt.withFile {
				l.Info("section skipped", "section", "warm-up")
				data, err := os.ReadFile(cfg.File)
				if err != nil {
					t.Fatalf("read log file: %v", err)
				}
				if !strings.Contains(string(data), "section skipped") {
					t.Fatalf("log file missing message: %q", data)
				}
			}
		})
	}
}
