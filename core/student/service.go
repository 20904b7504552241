package student

import (
	"errors"

	"madaris/core"
)

var ErrNotFound = errors.New("student not found")

// LedgerInspector reports how many fees still reference a student; used to
// warn about orphans on delete. Implemented by the fee service; injected to
// avoid a package cycle.
type LedgerInspector interface {
	CountByStudent(studentID string) (int, error)
}

type QueryFilter struct {
	SchoolID string
	Grades   []string // grade-level restriction set; one element for a single grade
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.SchoolID == "" && len(qf.Grades) == 0
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

type Service struct {
	students *core.Collection[Student, *Student]
	counters *core.Collection[counter, *counter]
	ledger   LedgerInspector
	log      core.Logger
}

func NewService(store *core.Store, log core.Logger) *Service {
	return &Service{
		students: core.NewCollection[Student, *Student](store, "students"),
		counters: core.NewCollection[counter, *counter](store, "student_counters"),
		log:      log,
	}
}

// BindLedger wires the fee-side inspector; called once at assembly time.
func (svc *Service) BindLedger(ledger LedgerInspector) { svc.ledger = ledger }

// Filter returns students matching the filter: school first, then
// grade-level membership. The full filtered set is always returned.
func (svc *Service) Filter(qf QueryFilter) ([]Student, error) {
	all, err := svc.students.List()
	if err != nil {
		return nil, err
	}
	matched := all[:0]
	for _, st := range all {
		if qf.SchoolID != "" && st.SchoolID != qf.SchoolID {
			continue
		}
		if !qf.matchGrade(st.Grade) {
			continue
		}
		matched = append(matched, st)
	}
	return matched, nil
}

// GetStudent returns the student with the given id, or nil when absent.
func (svc *Service) GetStudent(id string) (*Student, error) {
	return svc.students.Get(id)
}

// Save persists the student, assigning an id when new.
func (svc *Service) Save(st *Student) error {
	if err := svc.students.Upsert(st); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes the student record only. Fees and installments referencing
// the student are left in place; a warning is logged when any remain.
func (svc *Service) Delete(id string) error {
	if err := svc.students.Delete(id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if svc.ledger != nil {
		if n, err := svc.ledger.CountByStudent(id); err == nil && n > 0 {
			svc.log.Warn("deleted student still referenced by fees", map[string]interface{}{
				"studentId": id, "fees": n,
			})
		}
	}
	return nil
}
