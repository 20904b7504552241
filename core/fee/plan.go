package fee

import (
	"fmt"
	"math"

	"github.com/volatiletech/null/v8"
)

// CreateInstallmentPlan splits the fee's net amount (amount − discount)
// into n scheduled installments. Called once, at fee-creation time; it is
// never re-run for an existing fee. n ≤ 1 creates no installment rows — a
// single-payment fee has none.
//
// The per-installment amount is floor(net/n); the division remainder is
// front-loaded onto the first installment so the parts always sum exactly
// to the net amount. Due dates are spaced by 12/n months from the fee's
// due date using calendar month arithmetic.
func (svc *Service) CreateInstallmentPlan(f Fee, n int) error {
	if n <= 1 {
		return nil
	}

	net := f.Amount - f.Discount
	perInstallment := math.Floor(net / float64(n))
	remainder := math.Mod(net, float64(n))
	monthInterval := 12.0 / float64(n)

	desc := f.Description
	if desc == "" {
		desc = TypeLabel(f.FeeType)
	}

	for i := 0; i < n; i++ {
		amount := perInstallment
		if i == 0 {
			amount += remainder
		}
		dueDate := f.DueDate.AddDate(0, int(math.Floor(float64(i)*monthInterval)), 0)

		inst := Installment{
			FeeID:       f.ID,
			StudentID:   f.StudentID,
			StudentName: f.StudentName,
			Grade:       f.Grade,
			Amount:      amount,
			DueDate:     dueDate,
			PaidDate:    null.Time{},
			Status:      InstallmentUpcoming,
			Note:        fmt.Sprintf("القسط %d من %d - %s", i+1, n, desc),
			SchoolID:    f.SchoolID,
			FeeType:     f.FeeType,
		}
		if err := svc.SaveInstallment(&inst); err != nil {
			return err
		}
	}
	return nil
}
