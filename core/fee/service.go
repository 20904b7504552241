package fee

import (
	"errors"
	"time"

	"madaris/core"
	"madaris/core/student"
)

var (
	ErrNotFound            = errors.New("fee not found")
	ErrInstallmentNotFound = errors.New("installment not found")

	nowFunc = time.Now // mockable
)

// StudentDirectory resolves student references for denormalization.
type StudentDirectory interface {
	GetStudent(id string) (*student.Student, error)
}

// QueryFilter narrows fee and installment queries. Zero-valued fields are
// skipped; Grades is a restriction set, one element for a single grade.
type QueryFilter struct {
	SchoolID  string
	StudentID string
	FeeID     string // installments only
	Grades    []string
}

func (qf *QueryFilter) matchGrade(grade string) bool {
	if len(qf.Grades) == 0 {
		return true
	}
	for _, g := range qf.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// Service is the fee ledger. It owns Fee and Installment records and keeps
// them mutually consistent as payments are recorded, reversed and deleted.
type Service struct {
	fees     *core.Collection[Fee, *Fee]
	insts    *core.Collection[Installment, *Installment]
	students StudentDirectory
	log      core.Logger
}

func NewService(store *core.Store, students StudentDirectory, log core.Logger) *Service {
	return &Service{
		fees:     core.NewCollection[Fee, *Fee](store, "fees"),
		insts:    core.NewCollection[Installment, *Installment](store, "installments"),
		students: students,
		log:      log,
	}
}

// Fees returns fees matching the filter: school, then student, then grade
// membership. The full filtered set is always returned.
func (svc *Service) Fees(qf QueryFilter) ([]Fee, error) {
	all, err := svc.fees.List()
	if err != nil {
		return nil, err
	}
	matched := all[:0]
	for _, f := range all {
		if qf.SchoolID != "" && f.SchoolID != qf.SchoolID {
			continue
		}
		if qf.StudentID != "" && f.StudentID != qf.StudentID {
			continue
		}
		if !qf.matchGrade(f.Grade) {
			continue
		}
		matched = append(matched, f)
	}
	return matched, nil
}

// GetFee returns the fee with the given id, or nil when absent.
func (svc *Service) GetFee(id string) (*Fee, error) {
	return svc.fees.Get(id)
}

// SaveFee persists the fee. The student snapshot fields are refreshed from
// the current Student record when the reference resolves (a dangling
// reference is tolerated and the stale snapshot kept); balance and status
// are recomputed from amount, discount and cumulative paid, never taken
// from the caller.
func (svc *Service) SaveFee(f *Fee) error {
	if f.StudentID != "" {
		st, err := svc.students.GetStudent(f.StudentID)
		if err != nil {
			return err
		}
		if st != nil {
			f.StudentName = st.Name
			f.Grade = st.Grade
		} else {
			svc.log.Warn("fee references missing student", map[string]interface{}{
				"feeId": f.ID, "studentId": f.StudentID,
			})
		}
	}

	f.recompute()

	if err := svc.fees.Upsert(f); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteFee removes the fee and every installment referencing it. The two
// collections are written sequentially with no rollback: a failure after
// the fee delete can leave installments behind, which later reads tolerate
// as dangling references.
func (svc *Service) DeleteFee(id string) error {
	if err := svc.fees.Delete(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	insts, err := svc.insts.List()
	if err != nil {
		return err
	}
	for _, inst := range insts {
		if inst.FeeID != id {
			continue
		}
		if err := svc.insts.Delete(inst.ID); err != nil {
			return err
		}
	}
	return nil
}

// CountByStudent implements student.LedgerInspector.
func (svc *Service) CountByStudent(studentID string) (int, error) {
	fees, err := svc.Fees(QueryFilter{StudentID: studentID})
	if err != nil {
		return 0, err
	}
	return len(fees), nil
}

// Installments returns installments matching the filter, each with its
// status re-derived against the current date.
func (svc *Service) Installments(qf QueryFilter) ([]Installment, error) {
	all, err := svc.insts.List()
	if err != nil {
		return nil, err
	}
	now := nowFunc()
	matched := all[:0]
	for _, inst := range all {
		if qf.SchoolID != "" && inst.SchoolID != qf.SchoolID {
			continue
		}
		if qf.StudentID != "" && inst.StudentID != qf.StudentID {
			continue
		}
		if qf.FeeID != "" && inst.FeeID != qf.FeeID {
			continue
		}
		if !qf.matchGrade(inst.Grade) {
			continue
		}
		inst.Status = inst.DeriveStatus(now)
		matched = append(matched, inst)
	}
	return matched, nil
}

// GetInstallment returns the installment with the given id with its status
// re-derived, or nil when absent.
func (svc *Service) GetInstallment(id string) (*Installment, error) {
	inst, err := svc.insts.Get(id)
	if err != nil || inst == nil {
		return inst, err
	}
	inst.Status = inst.DeriveStatus(nowFunc())
	return inst, nil
}

// SaveInstallment persists the installment and reconciles the parent fee's
// cumulative paid amount. Only a change in payment *presence* moves money:
// creating or updating an installment into the paid state adds its amount
// to the fee, updating out of the paid state subtracts it (clamped at 0).
// An amount edit on an already-paid installment is deliberately not
// reconciled. A missing parent fee makes reconciliation a no-op.
func (svc *Service) SaveInstallment(inst *Installment) error {
	if inst.StudentID != "" && inst.StudentName == "" {
		st, err := svc.students.GetStudent(inst.StudentID)
		if err != nil {
			return err
		}
		if st != nil {
			inst.StudentName = st.Name
			inst.Grade = st.Grade
		}
	}
	if inst.FeeID != "" && inst.FeeType == "" {
		f, err := svc.GetFee(inst.FeeID)
		if err != nil {
			return err
		}
		if f != nil {
			inst.FeeType = f.FeeType
		}
	}

	inst.Status = inst.DeriveStatus(nowFunc())

	if inst.ID == "" {
		if err := svc.insts.Upsert(inst); err != nil {
			return err
		}
		if inst.PaidDate.Valid {
			return svc.applyPayment(inst.FeeID, inst.Amount)
		}
		return nil
	}

	prev, err := svc.insts.Get(inst.ID)
	if err != nil {
		return err
	}
	if prev == nil {
		return ErrInstallmentNotFound
	}
	if err := svc.insts.Upsert(inst); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrInstallmentNotFound
		}
		return err
	}

	switch {
	case !prev.PaidDate.Valid && inst.PaidDate.Valid: // payment added
		return svc.applyPayment(inst.FeeID, inst.Amount)
	case prev.PaidDate.Valid && !inst.PaidDate.Valid: // payment removed
		return svc.applyPayment(inst.FeeID, -inst.Amount)
	}
	return nil
}

// DeleteInstallment removes the installment, first reversing its amount out
// of the parent fee when it had been paid.
func (svc *Service) DeleteInstallment(id string) error {
	inst, err := svc.insts.Get(id)
	if err != nil {
		return err
	}
	if inst == nil {
		return ErrInstallmentNotFound
	}

	if inst.PaidDate.Valid {
		if err := svc.applyPayment(inst.FeeID, -inst.Amount); err != nil {
			return err
		}
	}

	if err := svc.insts.Delete(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrInstallmentNotFound
		}
		return err
	}
	return nil
}

// applyPayment moves delta into the fee's cumulative paid amount and
// recomputes balance and status. A dangling fee reference skips the update.
func (svc *Service) applyPayment(feeID string, delta float64) error {
	f, err := svc.GetFee(feeID)
	if err != nil {
		return err
	}
	if f == nil {
		svc.log.Warn("installment references missing fee; skipping reconciliation", map[string]interface{}{
			"feeId": feeID,
		})
		return nil
	}

	f.Paid += delta
	return svc.SaveFee(f)
}
