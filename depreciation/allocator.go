package depreciation

import "github.com/warp/depreciation-engine/generic"

// Allocate splits base evenly over periodCount periods.
//
// Every period but the last gets round(base/periodCount, 2), rounding half
// away from zero. The last gets whatever is left so the amounts always sum
// to base exactly. A non-positive base yields all zeros; a non-positive
// periodCount yields nil.
func Allocate(base generic.Money, periodCount int) []generic.Money {
	if periodCount <= 0 {
		return nil
	}

	amounts := make([]generic.Money, periodCount)
	if !base.IsPositive() {
		for i := range amounts {
			amounts[i] = generic.ZeroMoney
		}
		return amounts
	}

	base = base.Round2()
	per := base.DivInt(periodCount).Round2()
	for i := 0; i < periodCount-1; i++ {
		amounts[i] = per
	}
	amounts[periodCount-1] = base.Sub(per.MulInt(periodCount - 1)).Round2()
	return amounts
}
