package salary

import (
	"testing"

	"github.com/shopspring/decimal"

	"ems/backend/internal/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{entity.SalaryPending, entity.SalaryProcessed, true},
		{entity.SalaryProcessed, entity.SalaryPaid, true},
		{entity.SalaryPending, entity.SalaryPaid, false},
		{entity.SalaryPending, entity.SalaryPending, false},
		{entity.SalaryProcessed, entity.SalaryPending, false},
		{entity.SalaryPaid, entity.SalaryProcessed, false},
		{entity.SalaryPaid, entity.SalaryPending, false},
		{entity.SalaryPaid, entity.SalaryPaid, false},
		{"unknown", entity.SalaryPaid, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.allowed {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestExpectedTotal(t *testing.T) {
	d := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", s, err)
		}
		return v
	}

	tests := []struct {
		name       string
		base       string
		overtime   string
		deductions string
		want       string
	}{
		{"plain", "3000.00", "0", "0", "3000.00"},
		{"overtime added", "3000.00", "250.50", "0", "3250.50"},
		{"deductions subtracted", "3000.00", "0", "199.99", "2800.01"},
		{"both", "3000.00", "100.10", "50.05", "3050.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expectedTotal(d(tt.base), d(tt.overtime), d(tt.deductions))
			if !got.Equal(d(tt.want)) {
				t.Fatalf("expectedTotal = %s, want %s", got.String(), tt.want)
			}
		})
	}
}
