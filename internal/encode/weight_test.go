// Package encode tests for the weight barcode families.
package encode

import (
	"testing"

	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
)

// TestWeightBarcode_prefix77 verifies the fixed 2+6+7+1 layout with the
// literal "0" check position.
func TestWeightBarcode_prefix77(t *testing.T) {
	code, err := WeightBarcode("77", "12345", 1500, 0)
	if err != nil {
		t.Fatalf("WeightBarcode() returned error: %v", err)
	}

	if code.Payload != "7701234500015000" {
		t.Errorf("Payload = %q, want %q", code.Payload, "7701234500015000")
	}
	if len(code.Payload) != 16 {
		t.Errorf("Payload length = %d, want 16", len(code.Payload))
	}
	if code.Format != models.FormatCode128 {
		t.Errorf("Format = %q, want %q", code.Format, models.FormatCode128)
	}
}

// TestWeightBarcode_prefix49 verifies the discount layout and its core check
// digit.
func TestWeightBarcode_prefix49(t *testing.T) {
	code, err := WeightBarcode("49", "123", 150, 10)
	if err != nil {
		t.Fatalf("WeightBarcode() returned error: %v", err)
	}

	if code.Payload != "4900000012310001508" {
		t.Errorf("Payload = %q, want %q", code.Payload, "4900000012310001508")
	}
	if len(code.Payload) != 19 {
		t.Errorf("Payload length = %d, want 19", len(code.Payload))
	}
	if code.Format != models.FormatCode128 {
		t.Errorf("Format = %q, want %q", code.Format, models.FormatCode128)
	}
}

// TestWeightBarcode_prefix22 verifies the EAN-13 family.
func TestWeightBarcode_prefix22(t *testing.T) {
	code, err := WeightBarcode("22", "1234", 567, 0)
	if err != nil {
		t.Fatalf("WeightBarcode() returned error: %v", err)
	}

	if code.Payload != "2201234005672" {
		t.Errorf("Payload = %q, want %q", code.Payload, "2201234005672")
	}
	if len(code.Payload) != 13 {
		t.Errorf("Payload length = %d, want 13", len(code.Payload))
	}
	if code.Format != models.FormatEAN13 {
		t.Errorf("Format = %q, want %q", code.Format, models.FormatEAN13)
	}
}

// TestWeightBarcode_invalidInput verifies prefix and width validation.
func TestWeightBarcode_invalidInput(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		plu      string
		grams    int
		discount int
		wantCode errors.ErrorCode
	}{
		{"unknown prefix", "88", "123", 100, 0, errors.ErrInvalidPrefix},
		{"empty prefix", "", "123", 100, 0, errors.ErrInvalidPrefix},
		{"empty PLU", "77", "", 100, 0, errors.ErrValidation},
		{"PLU too wide for 77", "77", "1234567", 100, 0, errors.ErrValidation},
		{"PLU too wide for 22", "22", "123456", 100, 0, errors.ErrValidation},
		{"weight too wide for 22", "22", "123", 123456, 0, errors.ErrValidation},
		{"negative weight", "77", "123", -1, 0, errors.ErrValidation},
		{"discount out of range", "49", "123", 100, 120, errors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightBarcode(tt.prefix, tt.plu, tt.grams, tt.discount)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

// TestWeightBarcode_deterministic verifies pure regeneration.
func TestWeightBarcode_deterministic(t *testing.T) {
	first, err := WeightBarcode("49", "42", 999, 5)
	if err != nil {
		t.Fatalf("WeightBarcode() returned error: %v", err)
	}
	second, err := WeightBarcode("49", "42", 999, 5)
	if err != nil {
		t.Fatalf("WeightBarcode() returned error: %v", err)
	}
	if first.Payload != second.Payload {
		t.Errorf("regeneration differs: %q vs %q", first.Payload, second.Payload)
	}
}
