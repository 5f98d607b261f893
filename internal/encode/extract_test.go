// Package encode tests for GTIN extraction from DataMatrix payloads.
package encode

import (
	"testing"

	"github.com/retailqa/scanbench/backend/internal/models"
)

// TestExtractGTINAsEAN13_roundTrip verifies the extraction inverts the AI-01
// embedding for every template: encode a 13-digit GTIN, extract it back as
// the identical EAN-13.
func TestExtractGTINAsEAN13_roundTrip(t *testing.T) {
	gtins := []string{"4810099003310", "4006381333931", "2201234005672"}

	for _, id := range TemplateIDs() {
		for _, gtin := range gtins {
			code, err := DataMatrix(gtin, id)
			if err != nil {
				t.Fatalf("DataMatrix(%q, %q) returned error: %v", gtin, id, err)
			}

			got, ok := ExtractGTINAsEAN13(code.Payload)
			if !ok {
				t.Fatalf("template %q: no GTIN found in %q", id, code.Payload)
			}
			if got != gtin {
				t.Errorf("template %q: extracted %q, want %q", id, got, gtin)
			}
		}
	}
}

// TestExtractGTINAsEAN13_recomputesCheckDigit verifies the returned EAN-13
// carries a freshly computed check digit, not the embedded one.
func TestExtractGTINAsEAN13_recomputesCheckDigit(t *testing.T) {
	// GTIN-14 with a deliberately wrong last digit.
	got, ok := ExtractGTINAsEAN13("0104810099003319")
	if !ok {
		t.Fatal("no GTIN found")
	}
	if got != "4810099003310" {
		t.Errorf("extracted %q, want %q (check digit recomputed)", got, "4810099003310")
	}
}

// TestExtractGTINAsEAN13_absent verifies payloads without an AI-01 GTIN.
func TestExtractGTINAsEAN13_absent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"too short", "01123"},
		{"no marker", "4810099003310"},
		{"marker with letters after", "01ABCDEFGHIJKLMN"},
		{"gs1 pack payload", mustGS1(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := ExtractGTINAsEAN13(tt.payload); ok {
				t.Errorf("ExtractGTINAsEAN13(%q) = %q, want absent", tt.payload, got)
			}
		})
	}
}

func mustGS1(t *testing.T) string {
	t.Helper()
	payload, err := GS1(GS1Params{
		GoodsID:    "123",
		Type:       models.ProductPiece,
		Quantity:   2,
		DecimalPos: models.DecimalPosUnset,
	})
	if err != nil {
		t.Fatalf("GS1() returned error: %v", err)
	}
	return payload
}
