package normalize

import (
	"math"
	"strconv"
	"strings"

	"eua-price-lab/internal/domain"
)

// priceStripper removes thousands separators, currency symbols and
// whitespace before decimal parsing.
var priceStripper = strings.NewReplacer(
	",", "",
	"€", "",
	"$", "",
	"£", "",
	" ", "",
	" ", "",
)

// ParsePrice converts a raw price token into a validated price. Rejects
// tokens that fail decimal parsing, non-positive values, and values above
// domain.MaxValidPrice (the guard against market identifiers leaking into
// a price column).
func ParsePrice(token any) (float64, bool) {
	var price float64

	if v, ok := numericValue(token); ok {
		price = v
	} else {
		s, ok := token.(string)
		if !ok {
			return 0, false
		}
		s = priceStripper.Replace(strings.TrimSpace(s))
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		price = v
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	if price <= 0 || price > domain.MaxValidPrice {
		return 0, false
	}
	return price, true
}

// ParseObservation normalizes a (dateToken, priceToken) pair into a single
// observation. Both tokens must normalize for the pair to be accepted.
func ParseObservation(dateToken, priceToken any) (domain.Observation, bool) {
	d, ok := ParseDate(dateToken)
	if !ok {
		return domain.Observation{}, false
	}
	p, ok := ParsePrice(priceToken)
	if !ok {
		return domain.Observation{}, false
	}
	return domain.Observation{Date: d, Price: p}, true
}
