// Package mutate damages valid payloads to exercise scanner error paths.
package mutate

import (
	"math/rand"
	"strings"

	"github.com/retailqa/scanbench/backend/internal/errors"
)

// Method names a corruption routine.
type Method string

const (
	MethodRemoveChars   Method = "removeChars"
	MethodWrongChecksum Method = "wrongChecksum"
	MethodReplaceGS     Method = "replaceGS"
	MethodAddJunk       Method = "addJunk"
	MethodRandom        Method = "random"
)

// gs is the group separator control character found in GS1 payloads.
const gs = "\x1d"

// junkAlphabet feeds addJunk insertions.
const junkAlphabet = "!@#$%^&*()_+=<>?/\\~"

// Methods returns the concrete corruption methods (random excluded).
func Methods() []Method {
	return []Method{MethodRemoveChars, MethodWrongChecksum, MethodReplaceGS, MethodAddJunk}
}

// Corrupt applies the named corruption to payload. An unknown method returns
// the payload unchanged together with a non-fatal UnknownMutation condition.
func Corrupt(payload string, method Method) (string, error) {
	switch method {
	case MethodRemoveChars:
		return removeChars(payload), nil
	case MethodWrongChecksum:
		return wrongChecksum(payload), nil
	case MethodReplaceGS:
		return strings.ReplaceAll(payload, gs, "|||"), nil
	case MethodAddJunk:
		return addJunk(payload), nil
	case MethodRandom:
		concrete := Methods()
		return Corrupt(payload, concrete[rand.Intn(len(concrete))])
	}
	return payload, errors.New(errors.ErrUnknownMutation, "unknown corruption method: "+string(method))
}

// removeChars deletes a random contiguous run of 5-10 characters.
func removeChars(payload string) string {
	if payload == "" {
		return payload
	}
	n := 5 + rand.Intn(6)
	if n > len(payload) {
		n = len(payload)
	}
	start := rand.Intn(len(payload) - n + 1)
	return payload[:start] + payload[start+n:]
}

// wrongChecksum perturbs digits so the code scans but fails verification.
// For an AI-01 payload the 14 GTIN digits after the marker are targeted at
// roughly 30%; otherwise about 20% of all digits in the payload. At least one
// digit always changes.
func wrongChecksum(payload string) string {
	b := []byte(payload)

	var positions []int
	rate := 0.2
	if strings.HasPrefix(payload, "01") && len(payload) >= 16 {
		rate = 0.3
		for i := 2; i < 16; i++ {
			if b[i] >= '0' && b[i] <= '9' {
				positions = append(positions, i)
			}
		}
	} else {
		for i := range b {
			if b[i] >= '0' && b[i] <= '9' {
				positions = append(positions, i)
			}
		}
	}
	if len(positions) == 0 {
		return payload
	}

	changed := false
	for _, pos := range positions {
		if rand.Float64() < rate {
			b[pos] = shiftDigit(b[pos])
			changed = true
		}
	}
	if !changed {
		pos := positions[rand.Intn(len(positions))]
		b[pos] = shiftDigit(b[pos])
	}
	return string(b)
}

// shiftDigit moves a digit by a random non-zero amount mod 10.
func shiftDigit(d byte) byte {
	v := int(d - '0')
	return byte('0' + (v+1+rand.Intn(9))%10)
}

// addJunk inserts 10-15 junk characters at one random offset.
func addJunk(payload string) string {
	n := 10 + rand.Intn(6)
	var junk strings.Builder
	junk.Grow(n)
	for i := 0; i < n; i++ {
		junk.WriteByte(junkAlphabet[rand.Intn(len(junkAlphabet))])
	}
	at := rand.Intn(len(payload) + 1)
	return payload[:at] + junk.String() + payload[at:]
}
