package encode

import (
	"math"
	"strconv"
	"strings"

	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
	"github.com/retailqa/scanbench/backend/internal/uuid"
)

// GS1Prefix is the GS1 DataMatrix symbology identifier leading every pack
// payload.
const GS1Prefix = "]d2"

// GS1Params describes one GS1 pack code. GoodsID is mandatory; the remaining
// fields depend on the product type.
type GS1Params struct {
	GoodsID     string             `json:"goods_id"`
	Type        models.ProductType `json:"type"`
	Quantity    float64            `json:"quantity"`
	WeightGrams int                `json:"weight_grams"`
	Discount    int                `json:"discount"`
	UniqueID    string             `json:"unique_id"`
	DecimalPos  int                `json:"decimal_pos"`
}

// GS1 builds an application-identifier-tagged pack payload:
//
//	prefix GS 240<goodsId> GS (37<qty8>|3103<grams6>) GS [98<disc2> GS] [21<uid8> GS] [97<pos> GS]
//
// Piece quantities are scaled to an integer by the decimal position, which is
// derived from the quantity when the caller leaves it unset. A positive
// discount requires a unique ID; one is drawn when missing.
func GS1(p GS1Params) (string, error) {
	goodsID := digitsOnly(p.GoodsID)
	if goodsID == "" {
		return "", errors.New(errors.ErrMissingGoodsID, "goods ID must contain digits")
	}
	if len(goodsID) > 8 {
		return "", errors.New(errors.ErrValidation, "goods ID longer than 8 digits")
	}

	var sb strings.Builder
	sb.WriteString(GS1Prefix)
	sb.WriteString(GS)
	sb.WriteString("240")
	sb.WriteString(goodsID)
	sb.WriteString(GS)

	decimalPos := 0
	switch p.Type {
	case models.ProductPiece:
		decimalPos = p.DecimalPos
		if decimalPos < 0 {
			decimalPos = CalculateDecimalPosition(p.Quantity)
		}
		raw := int64(math.Round(p.Quantity * math.Pow10(decimalPos)))
		if raw < 0 {
			return "", errors.New(errors.ErrValidation, "quantity must not be negative")
		}
		sb.WriteString("37")
		sb.WriteString(padLeft(strconv.FormatInt(raw, 10), 8))
		sb.WriteString(GS)

	case models.ProductWeight:
		if p.WeightGrams < 0 {
			return "", errors.New(errors.ErrValidation, "weight must not be negative")
		}
		sb.WriteString("3103")
		sb.WriteString(padLeft(strconv.Itoa(p.WeightGrams), 6))
		sb.WriteString(GS)

	default:
		return "", errors.New(errors.ErrInvalidProductType, "unknown product type: "+string(p.Type))
	}

	uniqueID := p.UniqueID
	if p.Discount > 0 {
		if p.Discount > 99 {
			return "", errors.New(errors.ErrValidation, "discount must be within 0-99")
		}
		if uniqueID == "" {
			uniqueID = uuid.ShortID()
		}
		sb.WriteString("98")
		sb.WriteString(padLeft(strconv.Itoa(p.Discount), 2))
		sb.WriteString(GS)
	}

	if uniqueID != "" {
		sb.WriteString("21")
		sb.WriteString(uniqueID)
		sb.WriteString(GS)
	}

	if p.Type == models.ProductPiece && decimalPos > 0 {
		sb.WriteString("97")
		sb.WriteString(strconv.Itoa(decimalPos))
		sb.WriteString(GS)
	}

	return sb.String(), nil
}

// CalculateDecimalPosition returns the number of digits after the decimal
// separator in the canonical decimal representation of quantity, 0 when
// integral.
func CalculateDecimalPosition(quantity float64) int {
	s := strconv.FormatFloat(quantity, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		return len(s) - dot - 1
	}
	return 0
}
