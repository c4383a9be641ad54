package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Validator checks that a template candidate is a readable PDF within the
// configured size limit.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile checks a template path before it is read.
func (v *Validator) ValidateFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	return v.ValidateFileInfo(filePath, fileInfo)
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	return v.ValidateSize(fileInfo.Size())
}

// ValidateSize rejects empty and oversized documents.
func (v *Validator) ValidateSize(size int64) error {
	if size == 0 {
		return fmt.Errorf("file is empty")
	}

	if v.maxFileSize > 0 && size > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			size, v.maxFileSize)
	}

	return nil
}

// ValidateBytes checks the size and header of an in-memory document.
func (v *Validator) ValidateBytes(data []byte) error {
	if err := v.ValidateSize(int64(len(data))); err != nil {
		return err
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return fmt.Errorf("missing PDF header")
	}
	return nil
}

// PageCount opens data with an independent parser and returns its page
// count. It is used as a second opinion on template readability.
func (v *Validator) PageCount(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PDF file: %w", err)
	}
	return r.NumPage(), nil
}
