package comms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"madaris/core"
)

// Message statuses
const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
	StatusPending   = "pending"
)

// CustomTemplateName labels messages written free-form instead of from a
// built-in template.
const CustomTemplateName = "رسالة مخصصة"

// Message is a parent notification as sent: the student snapshot and the
// fully rendered body are frozen at send time.
type Message struct {
	core.RecordMeta
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Grade       string    `json:"grade"`
	ParentName  string    `json:"parentName"`
	ParentEmail string    `json:"parentEmail,omitempty"`
	Phone       string    `json:"phone"`
	Template    string    `json:"template"`
	Body        string    `json:"message"`
	SentAt      time.Time `json:"sentAt"`
	Status      string    `json:"status"` // delivered | failed | pending
	SchoolID    string    `json:"schoolId"`
}

// Template is a reusable notification text with {{name}}, {{amount}} and
// {{date}} placeholders.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

// Built-in templates
var Templates = []Template{
	{
		ID:   "payment-due",
		Name: "تذكير بالدفع",
		Body: "نفيدكم بأن القسط المستحق على الطالب {{name}} بمبلغ {{amount}} ر.ع مستحقة بتاريخ {{date}}، نرجو دفع المستحقات في اقرب فرصة ممكنة وشكراً.",
	},
	{
		ID:   "payment-overdue",
		Name: "تنبيه بتأخر السداد",
		Body: "نفيدكم بأن القسط المستحق على الطالب {{name}} بمبلغ {{amount}} ر.ع قد تأخر سداده، نرجو دفع المستحقات في اقرب فرصة ممكنة.",
	},
	{
		ID:   "payment-received",
		Name: "تأكيد استلام الدفعة",
		Body: "شكراً لسداد الدفعة المستحقة للطالب {{name}} بمبلغ {{amount}} ر.ع بتاريخ {{date}}.",
	},
	{
		ID:   "general-notice",
		Name: "إشعار عام",
		Body: "عزيزي ولي أمر الطالب {{name}}، نود إعلامكم بأن هناك معلومات هامة. للاستفسار يرجى التواصل على هاتف المدرسة.",
	},
}

// TemplateByID returns the built-in template, or nil when unknown.
func TemplateByID(id string) *Template {
	for i := range Templates {
		if Templates[i].ID == id {
			return &Templates[i]
		}
	}
	return nil
}

// TemplateData fills a template's placeholders for one recipient.
type TemplateData struct {
	Name   string
	Amount float64
	Date   time.Time
}

// Render substitutes the {{name}}, {{amount}} and {{date}} placeholders.
func Render(body string, data TemplateData) string {
	var date string
	if !data.Date.IsZero() {
		date = data.Date.Format("2006-01-02")
	}
	return strings.NewReplacer(
		"{{name}}", data.Name,
		"{{amount}}", formatAmount(data.Amount),
		"{{date}}", date,
	).Replace(body)
}

func formatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return strconv.FormatInt(int64(amount), 10)
	}
	return fmt.Sprintf("%.3f", amount) // OMR uses 3 decimal places
}
