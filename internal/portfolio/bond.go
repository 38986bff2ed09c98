package portfolio

import "github.com/hjkrause/alm-engine/internal/date"

// BondConfig controls schedule generation for the fixed-rate bond builder.
// The zero value selects a semiannual frequency and an unadjusted calendar.
type BondConfig struct {
	Frequency date.Duration // default 6 months
	Calendar  date.Calendar // default: no holidays, Unadjusted
}

func (cfg BondConfig) withDefaults() BondConfig {
	if cfg.Frequency.N == 0 {
		cfg.Frequency = date.Duration{N: 6, Unit: date.Months}
	}
	return cfg
}

// FixedRateBond generates the cash flows of a fixed-rate bullet bond: a
// coupon of notional × coupon at every scheduled date after issue, plus
// the principal at the adjusted maturity.
//
// The coupon is applied per period as a fraction of notional; it is not
// accrued by day count, so a semiannual 3% bond pays 3% of notional twice
// a year.
func FixedRateBond(issue, maturity date.Date, coupon, notional float64, cfg BondConfig) []CashFlow {
	cfg = cfg.withDefaults()

	schedule := date.NewSchedule(issue, maturity, cfg.Frequency, cfg.Calendar, true)

	var flows []CashFlow
	for _, d := range schedule.Dates() {
		if d == schedule.At(0) {
			continue // no payment at issue
		}
		flows = append(flows, CashFlow{Date: d, Amount: notional * coupon})
	}
	flows = append(flows, CashFlow{
		Date:   cfg.Calendar.Adjust(maturity),
		Amount: notional,
	})
	return flows
}

// ZeroCouponBond generates the single repayment flow of a zero-coupon
// bond.
func ZeroCouponBond(maturity date.Date, faceAmount float64) []CashFlow {
	return []CashFlow{{Date: maturity, Amount: faceAmount}}
}
