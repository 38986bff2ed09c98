package date

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const dcEps = 1e-12

func TestDayCounter_Actual365(t *testing.T) {
	dc := NewDayCounter(Actual365)
	assert.InDelta(t, 1.0, dc.YearFraction(New(2025, 1, 1), New(2026, 1, 1)), dcEps)
	assert.InDelta(t, 31.0/365.0, dc.YearFraction(New(2025, 1, 1), New(2025, 2, 1)), dcEps)
	assert.InDelta(t, 0.0, dc.YearFraction(New(2025, 1, 1), New(2025, 1, 1)), dcEps)
}

func TestDayCounter_ActualActual(t *testing.T) {
	dc := NewDayCounter(ActualActual)

	// Within a leap year the denominator is 366.
	assert.InDelta(t, 60.0/366.0, dc.YearFraction(New(2024, 1, 1), New(2024, 3, 1)), dcEps)
	// Within a normal year the denominator is 365.
	assert.InDelta(t, 59.0/365.0, dc.YearFraction(New(2025, 1, 1), New(2025, 3, 1)), dcEps)

	// Spanning years: prefix + whole years + suffix.
	got := dc.YearFraction(New(2023, 7, 1), New(2026, 7, 1))
	prefix := 184.0 / 365.0 // 2023-07-01 .. 2024-01-01
	suffix := 181.0 / 365.0 // 2026-01-01 .. 2026-07-01
	assert.InDelta(t, prefix+2.0+suffix, got, dcEps)
}

func TestDayCounter_Thirty360(t *testing.T) {
	dc := NewDayCounter(Thirty360)

	tests := []struct {
		name  string
		start Date
		end   Date
		want  float64
	}{
		{"zero interval", New(2025, 5, 7), New(2025, 5, 7), 0.0},
		{"one year", New(2025, 1, 15), New(2026, 1, 15), 1.0},
		{"one month", New(2025, 1, 15), New(2025, 2, 15), 30.0 / 360.0},
		{"day 31 clamps", New(2025, 1, 31), New(2025, 2, 28), (30*1 + (28 - 30)) / 360.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, dc.YearFraction(tt.start, tt.end), dcEps)
		})
	}
}

func TestDayCounter_Thirty360Additive(t *testing.T) {
	dc := NewDayCounter(Thirty360)
	a := New(2025, 1, 10)
	b := New(2025, 6, 10)
	c := New(2026, 1, 10)

	sum := dc.YearFraction(a, b) + dc.YearFraction(b, c)
	assert.InDelta(t, dc.YearFraction(a, c), sum, dcEps)
}

func TestDayCounter_DayCount(t *testing.T) {
	dc := NewDayCounter(Actual365)
	assert.Equal(t, 365, dc.DayCount(New(2025, 1, 1), New(2026, 1, 1)))
	assert.Equal(t, 366, dc.DayCount(New(2024, 1, 1), New(2025, 1, 1)))
	assert.Equal(t, -1, dc.DayCount(New(2025, 1, 2), New(2025, 1, 1)))
}
