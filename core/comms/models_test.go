package comms

import (
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		body string
		data TemplateData
		want string
	}{
		{
			name: "all placeholders",
			body: "الطالب {{name}} عليه {{amount}} ر.ع بتاريخ {{date}}",
			data: TemplateData{Name: "أحمد", Amount: 300, Date: date},
			want: "الطالب أحمد عليه 300 ر.ع بتاريخ 2026-09-01",
		},
		{
			name: "fractional amount keeps baisa precision",
			body: "{{amount}}",
			data: TemplateData{Amount: 150.5},
			want: "150.500",
		},
		{
			name: "whole amount has no decimals",
			body: "{{amount}}",
			data: TemplateData{Amount: 1200},
			want: "1200",
		},
		{
			name: "zero date renders empty",
			body: "{{date}}",
			data: TemplateData{},
			want: "",
		},
		{
			name: "repeated placeholder",
			body: "{{name}} {{name}}",
			data: TemplateData{Name: "مريم"},
			want: "مريم مريم",
		},
		{
			name: "no placeholders pass through",
			body: "نص ثابت",
			data: TemplateData{Name: "أحمد"},
			want: "نص ثابت",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.body, tt.data); got != tt.want {
				t.Errorf("Render() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTemplateByID(t *testing.T) {
	for _, id := range []string{"payment-due", "payment-overdue", "payment-received", "general-notice"} {
		tpl := TemplateByID(id)
		if tpl == nil {
			t.Fatalf("TemplateByID(%s) = nil", id)
		}
		if !strings.Contains(tpl.Body, "{{name}}") {
			t.Errorf("template %s has no name placeholder", id)
		}
	}
	if tpl := TemplateByID("lol"); tpl != nil {
		t.Errorf("TemplateByID() = %+v, want nil", tpl)
	}
}
