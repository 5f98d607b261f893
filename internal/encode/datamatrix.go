package encode

import (
	"github.com/retailqa/scanbench/backend/internal/errors"
)

// DataMatrixCode is the result of encoding a GTIN through a template.
type DataMatrixCode struct {
	Payload      string `json:"payload"`
	TemplateName string `json:"template_name"`
}

// DataMatrix encodes a GTIN into an AI-01-tagged DataMatrix payload using the
// named template (the default template when templateID is empty). The GTIN is
// zero-padded to 14 digits before embedding. The encoder is stateless; demo
// GTIN selection belongs to the item source.
func DataMatrix(gtin, templateID string) (DataMatrixCode, error) {
	tpl, err := TemplateByID(templateID)
	if err != nil {
		return DataMatrixCode{}, err
	}

	digits := digitsOnly(gtin)
	if digits == "" {
		return DataMatrixCode{}, errors.New(errors.ErrValidation, "GTIN must contain digits")
	}
	if len(digits) > 14 {
		return DataMatrixCode{}, errors.New(errors.ErrValidation, "GTIN longer than 14 digits")
	}

	return DataMatrixCode{
		Payload:      tpl.Build(padLeft(digits, 14)),
		TemplateName: tpl.Name,
	}, nil
}
