package fee

import (
	"time"

	"github.com/volatiletech/null/v8"

	"madaris/core"
)

// Fee types
const (
	TypeTuition        = "tuition"
	TypeTransportation = "transportation"
	TypeActivities     = "activities"
	TypeUniform        = "uniform"
	TypeBooks          = "books"
	TypeOther          = "other"
)

var (
	AllTypes = []string{TypeTuition, TypeTransportation, TypeActivities, TypeUniform, TypeBooks, TypeOther}

	typeLabels = map[string]string{
		TypeTuition:        "رسوم دراسية",
		TypeTransportation: "نقل مدرسي",
		TypeActivities:     "أنشطة",
		TypeUniform:        "زي مدرسي",
		TypeBooks:          "كتب",
		TypeOther:          "رسوم أخرى",
	}
)

// TypeLabel returns the Arabic display label for a fee type, or the raw
// type when unknown.
func TypeLabel(feeType string) string {
	if label, ok := typeLabels[feeType]; ok {
		return label
	}
	return feeType
}

// Fee statuses
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"
)

// Installment statuses (derived, never authoritative)
const (
	InstallmentPaid     = "paid"
	InstallmentUpcoming = "upcoming"
	InstallmentOverdue  = "overdue"
)

// InstallmentPlans are the allowed installment counts for a fee.
var InstallmentPlans = []int{1, 2, 3, 4, 6, 12}

// Fee is a single charge against a student. Paid, Balance and Status are
// ledger-owned: they are recomputed on every save and caller-supplied
// values are never trusted. StudentName and Grade are snapshots taken at
// save time, kept stale on purpose so receipts show the student as they
// were when the fee was recorded.
type Fee struct {
	core.RecordMeta
	StudentID          string    `json:"studentId"`
	StudentName        string    `json:"studentName"`
	Grade              string    `json:"grade"`
	FeeType            string    `json:"feeType"`
	Description        string    `json:"description,omitempty"`
	Amount             float64   `json:"amount"`
	Discount           float64   `json:"discount"`
	Paid               float64   `json:"paid"`
	Balance            float64   `json:"balance"`
	Status             string    `json:"status"`
	DueDate            time.Time `json:"dueDate"`
	SchoolID           string    `json:"schoolId"`
	TransportationType string    `json:"transportationType,omitempty"`
}

// recompute derives Balance and Status from Amount, Discount and Paid.
func (f *Fee) recompute() {
	if f.Paid < 0 {
		f.Paid = 0
	}
	f.Balance = f.Amount - f.Discount - f.Paid
	switch {
	case f.Balance <= 0:
		f.Status = StatusPaid
	case f.Paid > 0:
		f.Status = StatusPartial
	default:
		f.Status = StatusUnpaid
	}
}

// Installment is one scheduled slice of a fee's net amount. Status is
// derived from PaidDate and DueDate against the current date on every read
// and save.
type Installment struct {
	core.RecordMeta
	FeeID       string    `json:"feeId"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Grade       string    `json:"grade"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
	PaidDate    null.Time `json:"paidDate"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	SchoolID    string    `json:"schoolId"`
	FeeType     string    `json:"feeType"`
}

// DeriveStatus returns paid when a payment date is set, otherwise overdue
// or upcoming depending on the due date.
func (i *Installment) DeriveStatus(now time.Time) string {
	if i.PaidDate.Valid {
		return InstallmentPaid
	}
	if i.DueDate.Before(now) {
		return InstallmentOverdue
	}
	return InstallmentUpcoming
}

// NewFee contains information needed to record a new Fee.
type NewFee struct {
	StudentID    string    `json:"studentId" validate:"required"`
	FeeType      string    `json:"feeType" validate:"required,feetype"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount" validate:"required,gt=0"`
	Discount     float64   `json:"discount" validate:"omitempty,gte=0,ltefield=Amount"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	SchoolID     string    `json:"schoolId" validate:"required"`
	Installments int       `json:"installments" validate:"omitempty,oneof=1 2 3 4 6 12"`
}

func (nf *NewFee) Validate() error {
	nf.Description = core.CleanString(nf.Description)
	return core.TranslateError(core.Validate.Struct(nf))
}

func (nf NewFee) Fee() Fee {
	return Fee{
		StudentID:   nf.StudentID,
		FeeType:     nf.FeeType,
		Description: nf.Description,
		Amount:      nf.Amount,
		Discount:    nf.Discount,
		DueDate:     nf.DueDate,
		SchoolID:    nf.SchoolID,
	}
}
