package extract

import (
	"os"
	"path/filepath"
	"testing"

	"resumelab/internal/errors"
)

func TestFromFilePlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("  Jane Doe\nEngineer\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if got != "Jane Doe\nEngineer" {
		t.Errorf("got %q, want trimmed text", got)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var appErr *errors.AppError
	if !errors.As(err, &appErr) || appErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("got %v, want FILE_NOT_FOUND", err)
	}
}

func TestFromFileInvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7 not really a pdf"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := FromFile(path); err == nil {
		t.Error("expected error for malformed PDF")
	}
}
