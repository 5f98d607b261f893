package rotation

import (
	"github.com/retailqa/scanbench/backend/internal/encode"
	"github.com/retailqa/scanbench/backend/internal/models"
)

// CompositeMode selects the double-scan pairing strategy. At most one mode is
// active; setting a mode replaces the previous one.
type CompositeMode string

const (
	// CompositeOff renders the primary code alone.
	CompositeOff CompositeMode = "off"
	// CompositeSameDM shows the identical DataMatrix twice.
	CompositeSameDM CompositeMode = "same_dm"
	// CompositeDMPlusEAN shows the DataMatrix next to its embedded GTIN
	// re-encoded as EAN-13.
	CompositeDMPlusEAN CompositeMode = "dm_plus_ean"
	// CompositeEANBoth shows the embedded GTIN as EAN-13 on both sides.
	CompositeEANBoth CompositeMode = "ean_both"
	// CompositeConsecutiveDM shows DataMatrix codes for two consecutive
	// catalog items.
	CompositeConsecutiveDM CompositeMode = "consecutive_dm"
)

// CompositeModes returns every selectable mode.
func CompositeModes() []CompositeMode {
	return []CompositeMode{CompositeOff, CompositeSameDM, CompositeDMPlusEAN, CompositeEANBoth, CompositeConsecutiveDM}
}

func validCompositeMode(mode CompositeMode) bool {
	for _, m := range CompositeModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// applyComposite derives the primary/secondary pairing for a freshly encoded
// code. nextItem is the consecutive catalog item used by CompositeConsecutiveDM.
// Derivation failures degrade to the primary alone, never to an error.
func (e *Engine) applyComposite(primary Code, nextItem *models.Item) (Code, *Code) {
	switch e.composite {
	case CompositeSameDM:
		secondary := primary
		return primary, &secondary

	case CompositeDMPlusEAN:
		if ean, ok := encode.ExtractGTINAsEAN13(primary.Payload); ok {
			return primary, &Code{Payload: ean, Format: models.FormatEAN13}
		}

	case CompositeEANBoth:
		if ean, ok := encode.ExtractGTINAsEAN13(primary.Payload); ok {
			eanCode := Code{Payload: ean, Format: models.FormatEAN13}
			secondary := eanCode
			return eanCode, &secondary
		}

	case CompositeConsecutiveDM:
		if nextItem != nil {
			if code, err := e.encodeItem(*nextItem); err == nil {
				return primary, &code
			}
		}
	}

	return primary, nil
}
