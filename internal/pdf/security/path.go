package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator confines generated documents to a single output directory.
type PathValidator struct {
	outputDirectory string
}

// NewPathValidator creates a new path validator for the given directory
func NewPathValidator(outputDirectory string) (*PathValidator, error) {
	if outputDirectory == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}

	abs, err := filepath.Abs(outputDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	return &PathValidator{
		outputDirectory: filepath.Clean(abs),
	}, nil
}

// GetOutputDirectory returns the absolute output directory
func (v *PathValidator) GetOutputDirectory() string {
	return v.outputDirectory
}

// ValidatePath checks if a path is within the output directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	isWithin, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	if !isWithin {
		return fmt.Errorf("path is outside output directory: %s", path)
	}

	return nil
}

// IsPathWithinDirectory checks if a path is inside the output directory.
// Symlinks are resolved on both sides when they exist.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	realDir := v.outputDirectory
	if resolved, err := filepath.EvalSymlinks(v.outputDirectory); err == nil {
		realDir = resolved
	}

	within := func(p string) bool {
		for _, dir := range []string{v.outputDirectory, realDir} {
			if p == dir || strings.HasPrefix(p, dir+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}

	return within(cleanPath) && within(realPath), nil
}

// SanitizePath strips null bytes, resolves a relative name against the
// output directory and validates the result.
func (v *PathValidator) SanitizePath(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.outputDirectory, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}
	if absPath == v.outputDirectory {
		return "", fmt.Errorf("path is the output directory itself: %s", path)
	}

	return absPath, nil
}

// EnsureOutputDirectory creates the output directory if it is missing.
func (v *PathValidator) EnsureOutputDirectory() error {
	if err := os.MkdirAll(v.outputDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
