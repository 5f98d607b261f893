package rotation

import "math/rand"

// The item proposal step decides randomized magnitudes BEFORE the pure
// encoders run, so encoders stay deterministic and testable. Once a proposed
// value is recorded in history it is never re-drawn; replay reproduces the
// exact payload.

// DiscountRandom marks an item whose discount should be drawn per generation.
const DiscountRandom = -1

// proposeWeightGrams draws a plausible scale weight in grams.
func proposeWeightGrams(rng *rand.Rand) int {
	return 50 + rng.Intn(2951) // 50g - 3kg
}

// proposeQuantity draws a piece count.
func proposeQuantity(rng *rand.Rand) float64 {
	return float64(1 + rng.Intn(10))
}

// proposeDiscount draws a discount percentage.
func proposeDiscount(rng *rand.Rand) int {
	return 5 + rng.Intn(26) // 5% - 30%
}
