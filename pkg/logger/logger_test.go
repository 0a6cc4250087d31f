package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitReportsBuildFailure(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "dir", "app.log")

	if err := Init("development", bad); err == nil {
		t.Fatalf("expected error for an unwritable output path")
	}
}

func TestInitWritesToOutputPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	if err := Init("production", out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	Info("decision outcome recorded", "decision_id", "d-1")
	Sync()

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"decision_id":"d-1"`) {
		t.Fatalf("expected structured entry, got %s", raw)
	}
}
