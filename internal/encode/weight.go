package encode

import (
	"strconv"

	"github.com/retailqa/scanbench/backend/internal/checksum"
	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
)

// WeightCode is the result of encoding a weight barcode.
type WeightCode struct {
	Payload string        `json:"payload"`
	Format  models.Format `json:"format"`
}

// WeightBarcode builds a fixed-layout weight barcode for one of the three
// in-store prefix families:
//
//	77: prefix + PLU(6) + grams(7) + literal "0"           -> Code128
//	49: prefix + PLU(9) + discount(2) + grams(5) + core    -> Code128
//	22: prefix + PLU(5) + grams(5) + EAN-13 check digit    -> EAN-13
//
// The 77 family carries a literal "0" in the check position; scales in that
// family do not verify it.
func WeightBarcode(prefix, plu string, weightGrams, discount int) (WeightCode, error) {
	pluDigits := digitsOnly(plu)
	if pluDigits == "" {
		return WeightCode{}, errors.New(errors.ErrValidation, "PLU must contain digits")
	}
	if weightGrams < 0 {
		return WeightCode{}, errors.New(errors.ErrValidation, "weight must not be negative")
	}
	if discount < 0 || discount > 99 {
		return WeightCode{}, errors.New(errors.ErrValidation, "discount must be within 0-99")
	}
	grams := strconv.Itoa(weightGrams)

	switch prefix {
	case "77":
		if len(pluDigits) > 6 || len(grams) > 7 {
			return WeightCode{}, errors.New(errors.ErrValidation, "PLU or weight too wide for prefix 77")
		}
		payload := "77" + padLeft(pluDigits, 6) + padLeft(grams, 7) + "0"
		return WeightCode{Payload: payload, Format: models.FormatCode128}, nil

	case "49":
		if len(pluDigits) > 9 || len(grams) > 5 {
			return WeightCode{}, errors.New(errors.ErrValidation, "PLU or weight too wide for prefix 49")
		}
		body := "49" + padLeft(pluDigits, 9) + padLeft(strconv.Itoa(discount), 2) + padLeft(grams, 5)
		check, err := checksum.Core(body)
		if err != nil {
			return WeightCode{}, err
		}
		return WeightCode{Payload: body + string(check), Format: models.FormatCode128}, nil

	case "22":
		if len(pluDigits) > 5 || len(grams) > 5 {
			return WeightCode{}, errors.New(errors.ErrValidation, "PLU or weight too wide for prefix 22")
		}
		body := "22" + padLeft(pluDigits, 5) + padLeft(grams, 5)
		check, err := checksum.EAN13(body)
		if err != nil {
			return WeightCode{}, err
		}
		return WeightCode{Payload: body + string(check), Format: models.FormatEAN13}, nil
	}

	return WeightCode{}, errors.New(errors.ErrInvalidPrefix, "unknown weight barcode prefix: "+prefix)
}
