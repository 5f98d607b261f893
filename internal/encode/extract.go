package encode

import (
	"github.com/retailqa/scanbench/backend/internal/checksum"
)

// ExtractGTINAsEAN13 locates the first 14-digit run immediately following the
// literal AI marker "01" in a DataMatrix payload and re-encodes it as an
// EAN-13: the leading GTIN-14 digit is dropped and the check digit is
// recomputed. Returns false when the payload embeds no AI 01 GTIN. This is
// the only decode operation in the system; it is not a GS1 parser.
func ExtractGTINAsEAN13(payload string) (string, bool) {
	for i := 0; i+16 <= len(payload); i++ {
		if payload[i] != '0' || payload[i+1] != '1' {
			continue
		}
		run := payload[i+2 : i+16]
		if !isDigitRun(run) {
			continue
		}
		body := run[1:13]
		check, err := checksum.EAN13(body)
		if err != nil {
			return "", false
		}
		return body + string(check), true
	}
	return "", false
}

func isDigitRun(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
