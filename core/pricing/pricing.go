// Package pricing holds the rules turning catalog prices into cart prices.
package pricing

// EffectiveUnitPrice is the promotional price when one is set and non-zero,
// the standard price otherwise.
func EffectiveUnitPrice(price Money, promotion *Money) Money {
	if promotion != nil && !promotion.IsZero() {
		return *promotion
	}
	return price
}

func LinePrice(unit Money, quantity int) Money {
	return unit.Times(quantity)
}

// Sum adds every amount from scratch; it never carries state between calls.
func Sum(amounts ...Money) Money {
	tot := Zero
	for _, a := range amounts {
		tot = tot.Plus(a)
	}
	return tot
}
