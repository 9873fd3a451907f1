// Package money handles currency amounts as signed integer cents, keeping
// all arithmetic exact. Bank exports carry amounts as decimal strings in
// major units; everything downstream of parsing works in cents.
package money

import (
	"fmt"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/shopspring/decimal"
)

// DefaultSlack is the rounding slack, in cents, tolerated when distributing
// a remainder across proposed shares.
const DefaultSlack = 5

var hundred = decimal.NewFromInt(100)

// ParseCents parses a decimal amount string (bank format, possibly
// negative) and scales it to integer cents, rounding half away from zero.
func ParseCents(text string) (int64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrMalformedAmount, text)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// Allocator applies the remainder-distribution policy to proposed split
// shares. Slack is the maximum absolute remainder, exclusive, that will be
// absorbed; larger remainders are left for downstream validation to reject.
type Allocator struct {
	Slack int64
}

// NewAllocator returns an Allocator with the default slack policy.
func NewAllocator() Allocator {
	return Allocator{Slack: DefaultSlack}
}

// DistributeRemainder reconciles proposed per-user cent amounts against the
// required total. A small rounding remainder (0 < |remainder| < Slack) is
// assigned entirely to the first share in list order; this asymmetric
// tie-break is deliberate and must stay deterministic so that re-running an
// allocation reproduces it. Anything outside the slack window is returned
// unchanged. The input slice is not modified.
func (a Allocator) DistributeRemainder(targetTotal int64, shares []int64) []int64 {
	out := make([]int64, len(shares))
	copy(out, shares)
	if len(out) == 0 {
		return out
	}

	var sum int64
	for _, s := range out {
		sum += s
	}

	remainder := targetTotal - sum
	if remainder == 0 {
		return out
	}

	abs := remainder
	if abs < 0 {
		abs = -abs
	}
	if abs < a.Slack {
		out[0] += remainder
	}
	return out
}
