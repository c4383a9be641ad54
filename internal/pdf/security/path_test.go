package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tests := []struct {
		name      string
		dir       string
		wantError bool
	}{
		{
			name:      "valid directory",
			dir:       tempDir,
			wantError: false,
		},
		{
			name:      "empty directory",
			dir:       "",
			wantError: true,
		},
		{
			name:      "non-existent directory",
			dir:       filepath.Join(tempDir, "later"),
			wantError: false,
		},
		{
			name:      "relative directory",
			dir:       "out",
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator, err := NewPathValidator(tt.dir)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !filepath.IsAbs(validator.GetOutputDirectory()) {
				t.Errorf("Expected absolute output directory, got %s", validator.GetOutputDirectory())
			}
		})
	}
}

func TestPathValidator_ValidatePath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{"file in directory", filepath.Join(tempDir, "N-400_Doe_John.pdf"), false},
		{"nested file", filepath.Join(tempDir, "a", "b.pdf"), false},
		{"directory itself", tempDir, false},
		{"empty path", "", true},
		{"parent traversal", filepath.Join(tempDir, "..", "escape.pdf"), true},
		{"sibling with shared prefix", tempDir + "-other/file.pdf", true},
		{"absolute outside", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePath(tt.path)
			if tt.wantError && err == nil {
				t.Errorf("Expected error for %s", tt.path)
			}
			if !tt.wantError && err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.path, err)
			}
		})
	}
}

func TestPathValidator_SymlinkEscape(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	outside, err := os.MkdirTemp("", "path_validator_outside")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(outside)

	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	if err := validator.ValidatePath(link); err == nil {
		t.Error("Expected symlink pointing outside the output directory to be rejected")
	}
}

func TestPathValidator_SanitizePath(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	got, err := validator.SanitizePath("N-400_Doe\x00_John.pdf")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if want := filepath.Join(validator.GetOutputDirectory(), "N-400_Doe_John.pdf"); got != want {
		t.Errorf("SanitizePath() = %s, want %s", got, want)
	}

	for _, bad := range []string{"", "   ", "../escape.pdf", ".", tempDir} {
		if _, err := validator.SanitizePath(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestPathValidator_EnsureOutputDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "path_validator_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	validator, err := NewPathValidator(filepath.Join(tempDir, "nested", "out"))
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	if err := validator.EnsureOutputDirectory(); err != nil {
		t.Fatalf("EnsureOutputDirectory() error: %v", err)
	}

	info, err := os.Stat(validator.GetOutputDirectory())
	if err != nil || !info.IsDir() {
		t.Errorf("Expected output directory to exist, err=%v", err)
	}
}
