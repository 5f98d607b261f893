// Package encode builds the barcode payload strings used for scanner testing.
// All encoders are pure: randomized magnitudes (weight draws, discounts) are
// decided by the caller before the encoder runs.
package encode

import (
	"sort"
	"strings"

	"github.com/retailqa/scanbench/backend/internal/errors"
)

// GS is the group separator delimiting variable-length AI segments.
const GS = "\x1d"

// Template is a named DataMatrix layout variant. Build maps a zero-padded
// GTIN-14 to the full AI-01-tagged payload.
type Template struct {
	ID    string
	Name  string
	Build func(gtin14 string) string
}

// DefaultTemplateID is used when the caller does not name a template.
const DefaultTemplateID = "gs1"

// templates is the immutable registry of DataMatrix layout variants.
var templates = map[string]Template{
	"gs1": {
		ID:   "gs1",
		Name: "GS1 standard",
		Build: func(g string) string {
			return "01" + g
		},
	},
	"expiry": {
		ID:   "expiry",
		Name: "With expiry date",
		Build: func(g string) string {
			return "01" + g + "17" + "301231"
		},
	},
	"lot": {
		ID:   "lot",
		Name: "With lot number",
		Build: func(g string) string {
			return "01" + g + "10" + "LOT" + g[10:14]
		},
	},
	"serialized": {
		ID:   "serialized",
		Name: "Serialized",
		Build: func(g string) string {
			return "01" + g + GS + "21" + reverse(g[8:14])
		},
	},
}

// TemplateByID looks up a template; the empty ID resolves to the default.
func TemplateByID(id string) (Template, error) {
	if id == "" {
		id = DefaultTemplateID
	}
	tpl, ok := templates[id]
	if !ok {
		return Template{}, errors.New(errors.ErrUnknownTemplate, "unknown DataMatrix template: "+id)
	}
	return tpl, nil
}

// TemplateIDs returns all registered template identifiers, default first.
func TemplateIDs() []string {
	ids := []string{DefaultTemplateID}
	var rest []string
	for id := range templates {
		if id != DefaultTemplateID {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// padLeft zero-pads s to width characters.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
