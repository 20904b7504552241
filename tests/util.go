package testutil

import (
	"testing"
	"time"

	"madaris/core"
	"madaris/core/account"
	"madaris/core/fee"
	"madaris/core/school"
	"madaris/core/student"
	"madaris/storage/kv/inmem"
)

// NewConfig returns the settings tests run under, without touching the
// environment.
func NewConfig() *core.Config {
	return &core.Config{
		Debug:                   true,
		TestMode:                true,
		Env:                     "TEST",
		AppName:                 "Madaris",
		DefaultInstallments:     4,
		TuitionFeeCategory:      "رسوم دراسية",
		TransportationFeeOneWay: 150,
		TransportationFeeTwoWay: 300,
	}
}

// NewStore returns a fresh in-memory store.
func NewStore(t *testing.T) *core.Store {
	t.Helper()
	return core.NewStore(inmemkv.NewBackend(), core.NewNopLogger())
}

func CreateSchool(t *testing.T, svc *school.Service, name string) school.School {
	t.Helper()
	now := time.Now().UTC()
	sch := school.School{
		Name:              name,
		Active:            true,
		SubscriptionStart: now.AddDate(0, -1, 0),
		SubscriptionEnd:   now.AddDate(1, 0, 0),
	}
	if err := svc.Save(&sch); err != nil {
		t.Fatalf("createSchool() failed: %v", err)
	}
	return sch
}

func CreateStudent(t *testing.T, svc *student.Service, name, grade, schoolID string) student.Student {
	t.Helper()
	code, err := svc.GenerateStudentID(schoolID, grade)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	st := student.Student{
		Name:       name,
		StudentID:  code,
		Grade:      grade,
		ParentName: name + " ولي أمر",
		Phone:      "+96891234567",
		SchoolID:   schoolID,
	}
	if err := svc.Save(&st); err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return st
}

func CreateFee(
	t *testing.T,
	svc *fee.Service,
	studentID, schoolID, feeType string,
	amount, discount float64,
	dueDate time.Time,
) fee.Fee {
	t.Helper()
	f := fee.Fee{
		StudentID: studentID,
		FeeType:   feeType,
		Amount:    amount,
		Discount:  discount,
		DueDate:   dueDate,
		SchoolID:  schoolID,
	}
	if err := svc.SaveFee(&f); err != nil {
		t.Fatalf("createFee() failed: %v", err)
	}
	return f
}

func CreateAccount(
	t *testing.T,
	svc *account.Service,
	name, uname, email, pwd, role, schoolID string,
) account.Account {
	t.Helper()
	acc := account.Account{
		Name:     name,
		Username: uname,
		Email:    email,
		Role:     role,
		SchoolID: schoolID,
	}
	if pwd != "" {
		if err := acc.SetPassword(pwd); err != nil {
			t.Fatalf("createAccount() failed: %v", err)
		}
	}
	if err := svc.Save(&acc); err != nil {
		t.Fatalf("createAccount() failed: %v", err)
	}
	return acc
}
