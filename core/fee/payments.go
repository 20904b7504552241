package fee

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// MarkInstallmentPaid records a payment date on the installment, pushing
// its amount into the parent fee. Marking an already-paid installment only
// moves the payment date.
func (svc *Service) MarkInstallmentPaid(id string, paidOn time.Time) (*Installment, error) {
	inst, err := svc.GetInstallment(id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrInstallmentNotFound
	}

	inst.PaidDate = null.TimeFrom(paidOn)
	if err := svc.SaveInstallment(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// UnmarkInstallmentPaid clears the payment date, reversing the amount out
// of the parent fee. A second call on an already-unpaid installment is a
// no-op for the fee.
func (svc *Service) UnmarkInstallmentPaid(id string) (*Installment, error) {
	inst, err := svc.GetInstallment(id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrInstallmentNotFound
	}

	inst.PaidDate = null.Time{}
	if err := svc.SaveInstallment(inst); err != nil {
		return nil, err
	}
	return inst, nil
}
