package llamma

import (
	"llamalend/core"

	"github.com/shopspring/decimal"
)

// CheckRange n must lie in [min_bands, max_bands]
func CheckRange(market *core.Market, n int) error {
	if n < market.MinBands {
		return core.NewError(core.ErrRangeOutOfBounds, "range", n, market.MinBands)
	}

	if n > market.MaxBands {
		return core.NewError(core.ErrRangeOutOfBounds, "range", n, market.MaxBands)
	}

	return nil
}

// BandsFor (n2, n1) = (n1 + n - 1, n1)
func BandsFor(n1 int64, n int) core.Bands {
	return core.Bands{
		N2: n1 + int64(n) - 1,
		N1: n1,
	}
}

// MaxRangeFor scan ranges ascending and return the range just before the
// first one whose capacity falls short of debt. Shortfalls ahead of the first
// feasible range are skipped. Capacity equal to debt is feasible.
//
// Returns maxBands when no shortfall follows a feasible range and
// minBands - 1 when no range is feasible at all. The scan trusts capacities to
// shrink as the range grows and does not look past the first shortfall.
// A table with a leading shortfall therefore yields the end of a later
// feasible run, e.g. [short, ok, ok, short] gives minBands+2, not minBands-1.
func MaxRangeFor(capacities map[int]decimal.Decimal, debt decimal.Decimal, minBands, maxBands int) int {
	feasible := false
	for n := minBands; n <= maxBands; n++ {
		capacity, ok := capacities[n]
		if !ok || debt.GreaterThan(capacity) {
			if feasible {
				return n - 1
			}

			continue
		}

		feasible = true
	}

	if !feasible {
		return minBands - 1
	}

	return maxBands
}
