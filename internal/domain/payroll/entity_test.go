package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		salary         decimal.Decimal
		daysWorked     int
		overtime       decimal.Decimal
		deductions     Deductions
		wantGross      string
		wantDeductions string
		wantNet        string
	}{
		{
			name:       "standard month",
			salary:     d("1000"),
			daysWorked: 5,
			overtime:   d("500"),
			deductions: Deductions{
				SSS:        d("200"),
				PagIbig:    d("100"),
				PhilHealth: d("150"),
			},
			wantGross:      "5500",
			wantDeductions: "450",
			wantNet:        "5050",
		},
		{
			name:           "no days worked",
			salary:         d("750"),
			daysWorked:     0,
			overtime:       d("0"),
			deductions:     Deductions{},
			wantGross:      "0",
			wantDeductions: "0",
			wantNet:        "0",
		},
		{
			name:       "deductions exceed gross",
			salary:     d("100"),
			daysWorked: 1,
			overtime:   d("0"),
			deductions: Deductions{
				SSS: d("200"),
			},
			wantGross:      "100",
			wantDeductions: "200",
			wantNet:        "-100",
		},
		{
			name:           "fractional daily rate",
			salary:         d("512.50"),
			daysWorked:     22,
			overtime:       d("137.25"),
			deductions:     Deductions{PagIbig: d("100")},
			wantGross:      "11412.25",
			wantDeductions: "100",
			wantNet:        "11312.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross, totalDeductions, net := Compute(tt.salary, tt.daysWorked, tt.overtime, tt.deductions)

			assert.True(t, gross.Equal(d(tt.wantGross)), "gross = %s, want %s", gross, tt.wantGross)
			assert.True(t, totalDeductions.Equal(d(tt.wantDeductions)), "deductions = %s, want %s", totalDeductions, tt.wantDeductions)
			assert.True(t, net.Equal(d(tt.wantNet)), "net = %s, want %s", net, tt.wantNet)
		})
	}
}

func TestComputeIdentity(t *testing.T) {
	// net + deductions must always reproduce gross
	salaries := []string{"0", "1", "999.99", "1234.56"}
	for _, s := range salaries {
		for days := 0; days <= 31; days += 7 {
			deductions := Deductions{SSS: d("200.10"), PagIbig: d("100"), PhilHealth: d("150.55")}
			gross, total, net := Compute(d(s), days, d("42.42"), deductions)
			assert.True(t, net.Add(total).Equal(gross))
		}
	}
}

func TestDeductionsTotal(t *testing.T) {
	total := Deductions{SSS: d("200"), PagIbig: d("100"), PhilHealth: d("150")}.Total()
	assert.True(t, total.Equal(d("450")))

	assert.True(t, Deductions{}.Total().Equal(decimal.Zero))
}
