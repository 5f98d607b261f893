package encode

import (
	"math/rand"
	"strings"

	"github.com/retailqa/scanbench/backend/internal/checksum"
	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
)

// ChecksumKind selects how a field-config payload is terminated.
type ChecksumKind string

const (
	ChecksumEAN13 ChecksumKind = "ean13"
	ChecksumCore  ChecksumKind = "core"
	ChecksumFixed ChecksumKind = "fixed"
)

// Field is one numeric sub-field of a configured layout.
type Field struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
}

// FieldConfig declares a fixed barcode layout as an ordered list of
// zero-padded numeric sub-fields behind a literal prefix.
type FieldConfig struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Prefix   string        `json:"prefix"`
	Fields   []Field       `json:"fields"`
	Checksum ChecksumKind  `json:"checksum"`
	Fixed    byte          `json:"-"`
	Format   models.Format `json:"format"`
}

// fieldConfigs mirrors the three in-store weight families so operators can
// drive them field by field from the form.
var fieldConfigs = map[string]FieldConfig{
	"weight77": {
		ID:     "weight77",
		Name:   "Weight 77 (scale label)",
		Prefix: "77",
		Fields: []Field{
			{Name: "plu", Width: 6},
			{Name: "weight", Width: 7},
		},
		Checksum: ChecksumFixed,
		Fixed:    '0',
		Format:   models.FormatCode128,
	},
	"weight49": {
		ID:     "weight49",
		Name:   "Weight 49 (discount label)",
		Prefix: "49",
		Fields: []Field{
			{Name: "plu", Width: 9},
			{Name: "discount", Width: 2},
			{Name: "weight", Width: 5},
		},
		Checksum: ChecksumCore,
		Format:   models.FormatCode128,
	},
	"weight22": {
		ID:     "weight22",
		Name:   "Weight 22 (EAN-13 label)",
		Prefix: "22",
		Fields: []Field{
			{Name: "plu", Width: 5},
			{Name: "weight", Width: 5},
		},
		Checksum: ChecksumEAN13,
		Format:   models.FormatEAN13,
	},
}

// FieldConfigByID looks up a declared layout.
func FieldConfigByID(id string) (FieldConfig, error) {
	cfg, ok := fieldConfigs[id]
	if !ok {
		return FieldConfig{}, errors.New(errors.ErrUnknownFieldConfig, "unknown field config: "+id)
	}
	return cfg, nil
}

// FieldConfigs returns all declared layouts.
func FieldConfigs() []FieldConfig {
	out := make([]FieldConfig, 0, len(fieldConfigs))
	for _, cfg := range fieldConfigs {
		out = append(out, cfg)
	}
	return out
}

// FromFieldConfig assembles a payload from the named layout, zero-padding
// each sub-field. ok is false when a field value is wider than its declared
// width; that is a "cannot build" signal for the form, not an error. With
// simulateError the check digit is replaced by a guaranteed-different digit
// to produce a reproducibly invalid code.
func FromFieldConfig(configID string, values map[string]string, simulateError bool) (payload string, ok bool, err error) {
	cfg, err := FieldConfigByID(configID)
	if err != nil {
		return "", false, err
	}

	var sb strings.Builder
	sb.WriteString(cfg.Prefix)
	for _, f := range cfg.Fields {
		v := digitsOnly(values[f.Name])
		if len(v) > f.Width {
			return "", false, nil
		}
		sb.WriteString(padLeft(v, f.Width))
	}
	body := sb.String()

	var check byte
	switch cfg.Checksum {
	case ChecksumFixed:
		check = cfg.Fixed
	case ChecksumEAN13:
		check, err = checksum.EAN13(body)
	case ChecksumCore:
		check, err = checksum.Core(body)
	default:
		err = errors.New(errors.ErrInternal, "field config has no checksum kind")
	}
	if err != nil {
		return "", false, err
	}

	if simulateError {
		check = wrongDigit(check)
	}
	return body + string(check), true, nil
}

// wrongDigit returns a random digit guaranteed to differ from the correct one.
func wrongDigit(correct byte) byte {
	v := int(correct - '0')
	return byte('0' + (v+1+rand.Intn(9))%10)
}
