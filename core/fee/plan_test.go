package fee

import (
	"sort"
	"testing"
	"time"
)

func TestService_CreateInstallmentPlan(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		amount      float64
		discount    float64
		n           int
		wantAmounts []float64
		wantMonths  []int // offset from the fee due date
	}{
		{name: "single payment has no rows", amount: 1000, n: 1},
		{name: "zero", amount: 1000, n: 0},
		{name: "even split", amount: 1200, n: 4, wantAmounts: []float64{300, 300, 300, 300}, wantMonths: []int{0, 3, 6, 9}},
		{name: "remainder front-loaded", amount: 1000, n: 3, wantAmounts: []float64{334, 333, 333}, wantMonths: []int{0, 4, 8}},
		{name: "discount nets out first", amount: 1000, discount: 100, n: 4, wantAmounts: []float64{225, 225, 225, 225}, wantMonths: []int{0, 3, 6, 9}},
		{name: "monthly", amount: 1200, n: 12, wantAmounts: []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100}, wantMonths: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{name: "fractional baisa", amount: 100.5, n: 4, wantAmounts: []float64{25.5, 25, 25, 25}, wantMonths: []int{0, 3, 6, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := setup(t)
			f := createFee(t, svc, st, tt.amount, tt.discount, due)

			if err := svc.CreateInstallmentPlan(f, tt.n); err != nil {
				t.Fatalf("CreateInstallmentPlan() failed, %v", err)
			}

			insts, err := svc.Installments(QueryFilter{FeeID: f.ID})
			if err != nil {
				t.Fatalf("Installments() failed, %v", err)
			}
			if len(insts) != len(tt.wantAmounts) {
				t.Fatalf("Installments() len = %d, want %d", len(insts), len(tt.wantAmounts))
			}
			sort.Slice(insts, func(i, j int) bool { return insts[i].DueDate.Before(insts[j].DueDate) })

			var sum float64
			for i, inst := range insts {
				sum += inst.Amount
				if inst.Amount != tt.wantAmounts[i] {
					t.Errorf("installment %d Amount = %v, want %v", i+1, inst.Amount, tt.wantAmounts[i])
				}
				wantDue := due.AddDate(0, tt.wantMonths[i], 0)
				if !inst.DueDate.Equal(wantDue) {
					t.Errorf("installment %d DueDate = %v, want %v", i+1, inst.DueDate, wantDue)
				}
				if inst.FeeID != f.ID {
					t.Errorf("installment %d FeeID = %s, want %s", i+1, inst.FeeID, f.ID)
				}
			}
			if net := tt.amount - tt.discount; len(insts) > 0 && sum != net {
				t.Errorf("installments sum = %v, want the net amount %v", sum, net)
			}
		})
	}
}
