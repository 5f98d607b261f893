// Package checksum implements the check-digit algorithms used by retail
// barcode formats.
package checksum

import (
	"github.com/retailqa/scanbench/backend/internal/errors"
)

// EAN13 computes the check digit for a 12-digit EAN-13 body. Positions are
// 1-indexed from the left: odd positions weigh 1, even positions weigh 3.
func EAN13(digits12 string) (byte, error) {
	if len(digits12) != 12 || !allDigits(digits12) {
		return 0, errors.New(errors.ErrInvalid, "EAN-13 body must be exactly 12 digits")
	}

	sum := 0
	for i := 0; i < 12; i++ {
		d := int(digits12[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return byte('0' + (10-sum%10)%10), nil
}

// Core computes the check digit used by the weight/Code128 code families.
// The weighting runs right-to-left over the whole body: the rightmost digit
// (position 1) weighs 3, position 2 weighs 1, alternating. For a 12-digit
// body this coincides with the EAN-13 scheme.
func Core(digits string) (byte, error) {
	if len(digits) == 0 || !allDigits(digits) {
		return 0, errors.New(errors.ErrInvalid, "check digit body must be numeric and non-empty")
	}

	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight // 3,1,3,1,...
	}
	return byte('0' + (10-sum%10)%10), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
