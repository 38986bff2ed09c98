package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjkrause/alm-engine/internal/curve"
	"github.com/hjkrause/alm-engine/internal/date"
	"github.com/hjkrause/alm-engine/internal/executor"
)

func flatCurve(ref date.Date, rate float64) curve.Curve {
	return curve.NewFlatForward(ref, rate, date.NewDayCounter(date.Actual365))
}

func TestCashFlow_OccursBetween(t *testing.T) {
	from := date.New(2025, 1, 1)
	to := date.New(2025, 12, 31)

	tests := []struct {
		name string
		d    date.Date
		want bool
	}{
		{"inside", date.New(2025, 6, 1), true},
		{"lower bound excluded", from, false},
		{"upper bound included", to, true},
		{"before", date.New(2024, 6, 1), false},
		{"after", date.New(2026, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf := CashFlow{Date: tt.d, Amount: 1}
			assert.Equal(t, tt.want, cf.OccursBetween(from, to))
		})
	}
}

func TestAsset_MarketValueLinearInVolume(t *testing.T) {
	ref := date.New(2025, 1, 1)
	crv := flatCurve(ref, 0.03)
	flows := []CashFlow{
		{Date: ref.AddYears(1), Amount: 30},
		{Date: ref.AddYears(2), Amount: 1030},
	}

	unit := NewAsset(flows, 1.0)
	scaled := NewAsset(flows, 2.5)

	assert.InDelta(t, 2.5*unit.MarketValue(crv, ref), scaled.MarketValue(crv, ref), 1e-9)
}

func TestAsset_MarketValueIgnoresPastFlows(t *testing.T) {
	ref := date.New(2025, 1, 1)
	crv := flatCurve(ref, 0.03)

	a := NewAsset([]CashFlow{
		{Date: ref.AddYears(-1), Amount: 1000}, // in the past
		{Date: ref, Amount: 100},               // on the reference date
	}, 1.0)

	// Flows on ref discount at 1.0; past flows are dropped.
	assert.InDelta(t, 100.0, a.MarketValue(crv, ref), 1e-12)
}

func TestAsset_CashFlowSum(t *testing.T) {
	a := NewAsset([]CashFlow{
		{Date: date.New(2025, 6, 1), Amount: 30},
		{Date: date.New(2025, 12, 1), Amount: 30},
		{Date: date.New(2026, 6, 1), Amount: 1030},
	}, 2.0)

	got := a.CashFlowSum(date.New(2025, 1, 1), date.New(2025, 12, 31))
	assert.InDelta(t, 120.0, got, 1e-12)
}

func TestAsset_CashFlowSumPartitions(t *testing.T) {
	a := NewAsset(FixedRateBond(
		date.New(2025, 1, 1), date.New(2030, 1, 1), 0.03, 1000, BondConfig{}), 1.0)

	from := date.New(2025, 1, 1)
	mid := date.New(2027, 7, 1)
	to := date.New(2030, 12, 31)

	whole := a.CashFlowSum(from, to)
	split := a.CashFlowSum(from, mid) + a.CashFlowSum(mid, to)
	assert.InDelta(t, whole, split, 1e-12)
}

func TestAsset_CloneIsolatesVolume(t *testing.T) {
	a := NewAsset([]CashFlow{{Date: date.New(2026, 1, 1), Amount: 100}}, 1.0)
	b := a.Clone()
	b.SetVolume(5.0)

	assert.Equal(t, 1.0, a.Volume())
	assert.Equal(t, 5.0, b.Volume())
}

func TestPortfolio_MarketValueEqualsSumOfAssets(t *testing.T) {
	ref := date.New(2025, 1, 1)
	crv := flatCurve(ref, 0.04)

	p := New()
	var direct float64
	for i := 0; i < 8; i++ {
		a := NewAsset(FixedRateBond(
			ref, ref.AddYears(5+i), 0.02+0.005*float64(i), 1000, BondConfig{}), 1.0)
		p.Add(a)
		direct += a.MarketValue(crv, ref)
	}

	serial := executor.NewSerial()
	pool := executor.NewParallel(1, 4)

	mvSerial, err := p.MarketValue(crv, ref, serial)
	require.NoError(t, err)
	mvPool, err := p.MarketValue(crv, ref, pool)
	require.NoError(t, err)

	assert.InDelta(t, direct, mvSerial, 1e-9)
	// Slot-write then sequential sum: bit-identical across executors.
	assert.Equal(t, mvSerial, mvPool)
}

func TestPortfolio_CashFlowSumAcrossExecutors(t *testing.T) {
	ref := date.New(2025, 1, 1)

	p := New()
	for i := 0; i < 5; i++ {
		p.Add(NewAsset(FixedRateBond(
			ref, ref.AddYears(10), 0.03, 1000, BondConfig{}), 1.0))
	}

	serial := executor.NewSerial()
	pool := executor.NewParallel(1, 4)

	from, to := ref, ref.AddYears(1)
	cfSerial, err := p.CashFlowSum(from, to, serial)
	require.NoError(t, err)
	cfPool, err := p.CashFlowSum(from, to, pool)
	require.NoError(t, err)

	assert.Equal(t, cfSerial, cfPool)
	// Two semiannual coupons of 30 per bond, five bonds.
	assert.InDelta(t, 300.0, cfSerial, 1e-9)
}

func TestPortfolio_CloneIsDeep(t *testing.T) {
	p := New(NewAsset([]CashFlow{{Date: date.New(2026, 1, 1), Amount: 1}}, 1.0))
	q := p.Clone()
	q.Assets()[0].SetVolume(9.0)

	assert.Equal(t, 1.0, p.Assets()[0].Volume())
}

func TestFixedRateBond_Flows(t *testing.T) {
	issue := date.New(2025, 5, 7)
	maturity := issue.AddYears(10)
	flows := FixedRateBond(issue, maturity, 0.03, 1000, BondConfig{})

	// 20 semiannual coupons plus the principal.
	require.Len(t, flows, 21)

	// No payment at issue.
	for _, cf := range flows {
		assert.Greater(t, cf.Date, issue)
	}

	// Coupons are notional × coupon per period.
	assert.InDelta(t, 30.0, flows[0].Amount, 1e-12)
	assert.Equal(t, issue.AddMonths(6), flows[0].Date)

	// Principal at maturity.
	last := flows[len(flows)-1]
	assert.Equal(t, maturity, last.Date)
	assert.InDelta(t, 1000.0, last.Amount, 1e-12)
}

func TestZeroCouponBond(t *testing.T) {
	maturity := date.New(2030, 1, 1)
	flows := ZeroCouponBond(maturity, 500)

	require.Len(t, flows, 1)
	assert.Equal(t, maturity, flows[0].Date)
	assert.Equal(t, 500.0, flows[0].Amount)
}
