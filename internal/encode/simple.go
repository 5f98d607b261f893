package encode

import (
	"strings"

	"github.com/retailqa/scanbench/backend/internal/checksum"
	"github.com/retailqa/scanbench/backend/internal/models"
)

// SimpleCode is the result of encoding a plain linear value.
type SimpleCode struct {
	Payload string        `json:"payload"`
	Format  models.Format `json:"format"`
}

// Simple trims the value and, for the EAN-13 format with an exactly 12-digit
// body, appends the check digit. Anything else passes through unchanged, so a
// complete 13-digit code is never re-checksummed.
func Simple(value string, format models.Format) SimpleCode {
	trimmed := strings.TrimSpace(value)

	if format == models.FormatEAN13 && len(trimmed) == 12 && digitsOnly(trimmed) == trimmed {
		if check, err := checksum.EAN13(trimmed); err == nil {
			trimmed += string(check)
		}
	}

	return SimpleCode{Payload: trimmed, Format: format}
}
