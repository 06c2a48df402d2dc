// Package extract turns uploaded resume documents into plain text for
// the suggestion engine and the AI gateway.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumelab/internal/errors"
)

// FromFile extracts plain text from a resume file on disk. PDF files go
// through the PDF parser; anything else is read as UTF-8 text.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(
				errors.ErrCodeFileNotFound,
				fmt.Sprintf("resume file not found: %s", path),
				err,
			)
		}
		return "", errors.NewIOError(
			errors.ErrCodeFileNotReadable,
			fmt.Sprintf("cannot read resume file: %s", path),
			err,
		)
	}

	if isPDF(path, data) {
		return FromPDF(data)
	}
	return strings.TrimSpace(string(data)), nil
}

// FromPDF extracts plain text from an in-memory PDF payload.
func FromPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewIOError(
			errors.ErrCodeInvalidFormat,
			"empty PDF data",
			nil,
		)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewIOError(
			errors.ErrCodeExtractionFailed,
			"failed to parse PDF",
			err,
		).WithContext("size_bytes", len(data))
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.NewIOError(
			errors.ErrCodeExtractionFailed,
			"failed to extract PDF text",
			err,
		)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", errors.NewIOError(
			errors.ErrCodeExtractionFailed,
			"failed to read extracted PDF text",
			err,
		)
	}

	return strings.TrimSpace(buf.String()), nil
}

func isPDF(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return true
	}
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
