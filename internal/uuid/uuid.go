// Package uuid provides UUID v4 generation plus short display-ID utilities.
package uuid

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UUID v4 format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
// where y is one of [8, 9, a, b] (variant bits)
var uuidV4Regex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// New generates a new UUID v4.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid UUID v4.
// Enforces strict format with dashes and correct variant bits.
func IsValid(s string) bool {
	return uuidV4Regex.MatchString(s)
}

// Validate returns an error if the string is not a valid UUID v4.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid UUID v4 format: %q", s)
	}
	return nil
}

// shortAlphabet is the symbol set for short display IDs. Uppercase letters
// and digits only so the ID survives numeric-keypad entry and stays readable
// inside a barcode payload.
const shortAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ShortIDLength is the length of IDs produced by ShortID.
const ShortIDLength = 8

var (
	shortMu  sync.Mutex
	shortRng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// ShortID generates an 8-character identifier over [A-Z0-9]. It is meant to
// make generated codes visually distinct per item, not to be cryptographically
// unique.
func ShortID() string {
	shortMu.Lock()
	defer shortMu.Unlock()

	var b strings.Builder
	b.Grow(ShortIDLength)
	for i := 0; i < ShortIDLength; i++ {
		b.WriteByte(shortAlphabet[shortRng.Intn(len(shortAlphabet))])
	}
	return b.String()
}
