package split

import (
	"errors"

	"github.com/mverhoef/splitty/internal/money"
)

var (
	ErrNoParticipants = errors.New("at least one participant is required")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidWeight  = errors.New("weights must be positive integers")
	ErrDuplicateKey   = errors.New("duplicate participant key")
)

// Share is one participant's weight in a split. A weight of 1 is an equal
// share; higher weights mean a larger multiple of the unit share. Shares are
// a slice rather than a map because remainder distribution depends on a
// stable participant order.
type Share struct {
	Key   string
	Units int
}

// Split divides total among the given shares so that the results sum to
// total exactly, to the cent.
//
// The unit share is total divided by the summed weights, rounded to a whole
// cent. Because of that rounding the weighted shares can miss the total by a
// few cents in either direction; the difference is distributed one cent at a
// time over the participants in share order, wrapping around if a single
// pass is not enough.
func Split(total money.Amount, shares []Share) (map[string]money.Amount, error) {
	if err := validate(total, shares); err != nil {
		return nil, err
	}

	totalUnits := 0
	for _, s := range shares {
		totalUnits += s.Units
	}

	unitShare := money.Amount(roundDiv(int64(total), int64(totalUnits)))

	result := make(map[string]money.Amount, len(shares))
	distributed := money.Amount(0)
	for _, s := range shares {
		amount := money.Amount(s.Units) * unitShare
		result[s.Key] = amount
		distributed += amount
	}

	// Spread the rounding remainder cent by cent, in share order.
	remainder := total - distributed
	for i := 0; remainder != 0; i = (i + 1) % len(shares) {
		key := shares[i].Key
		if remainder > 0 {
			result[key]++
			remainder--
		} else if result[key] > 0 {
			result[key]--
			remainder++
		}
	}

	return result, nil
}

// Equal splits total evenly over the given keys, in key order.
func Equal(total money.Amount, keys []string) (map[string]money.Amount, error) {
	shares := make([]Share, len(keys))
	for i, k := range keys {
		shares[i] = Share{Key: k, Units: 1}
	}
	return Split(total, shares)
}

func validate(total money.Amount, shares []Share) error {
	if len(shares) == 0 {
		return ErrNoParticipants
	}
	if total < 0 {
		return ErrNegativeAmount
	}
	seen := make(map[string]struct{}, len(shares))
	for _, s := range shares {
		if s.Units <= 0 {
			return ErrInvalidWeight
		}
		if _, ok := seen[s.Key]; ok {
			return ErrDuplicateKey
		}
		seen[s.Key] = struct{}{}
	}
	return nil
}

// roundDiv divides a by b rounding half away from zero.
func roundDiv(a, b int64) int64 {
	return (2*a + b) / (2 * b)
}
