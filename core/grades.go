package core

import "strings"

// GradeLevels for the Oman education system, kindergarten first.
var GradeLevels = []string{
	"الروضة الأولى KG1",
	"التمهيدي KG2",
	"الصف الأول",
	"الصف الثاني",
	"الصف الثالث",
	"الصف الرابع",
	"الصف الخامس",
	"الصف السادس",
	"الصف السابع",
	"الصف الثامن",
	"الصف التاسع",
	"الصف العاشر",
	"الصف الحادي عشر",
	"الصف الثاني عشر",
}

// IsKindergarten reports whether the grade label is a KG level.
func IsKindergarten(grade string) bool {
	return strings.Contains(grade, "KG")
}

// IsGradeLevel reports whether grade is one of the known levels.
func IsGradeLevel(grade string) bool {
	for _, g := range GradeLevels {
		if g == grade {
			return true
		}
	}
	return false
}
