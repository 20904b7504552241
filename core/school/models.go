package school

import (
	"time"

	"madaris/core"
)

// Locations in Oman
var Locations = []string{
	"مسقط", "صلالة", "صحار", "صور", "نزوى", "البريمي", "الرستاق", "إبراء",
	"بهلاء", "عبري", "الخابورة", "السويق", "بركاء", "ينقل", "مصيرة", "الدقم",
	"مدحاء", "الخوض", "العامرات", "بوشر", "مطرح", "السيب", "قريات",
}

type School struct {
	core.RecordMeta
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	Location          string    `json:"location"`
	Active            bool      `json:"active"`
	SubscriptionStart time.Time `json:"subscriptionStart"`
	SubscriptionEnd   time.Time `json:"subscriptionEnd"`
	Logo              string    `json:"logo"`
}

// SubscriptionActive reports whether `at` falls inside the subscription window.
func (s *School) SubscriptionActive(at time.Time) bool {
	return !at.Before(s.SubscriptionStart) && !at.After(s.SubscriptionEnd)
}

// Settings holds the per-school preferences used by fee and transportation
// defaults. One record per school.
type Settings struct {
	core.RecordMeta
	SchoolID                string  `json:"schoolId"`
	Name                    string  `json:"name"`
	Email                   string  `json:"email"`
	Phone                   string  `json:"phone"`
	Address                 string  `json:"address"`
	Logo                    string  `json:"logo"`
	DefaultInstallments     int     `json:"defaultInstallments"`
	TuitionFeeCategory      string  `json:"tuitionFeeCategory"`
	TransportationFeeOneWay float64 `json:"transportationFeeOneWay"`
	TransportationFeeTwoWay float64 `json:"transportationFeeTwoWay"`
}

// NewSchool contains information needed to register a new School.
// The subscription window is validated here and not re-checked downstream.
type NewSchool struct {
	Name              string    `json:"name" validate:"required"`
	Email             string    `json:"email" validate:"omitempty,email"`
	Phone             string    `json:"phone" validate:"omitempty,omanphone"`
	Address           string    `json:"address"`
	Location          string    `json:"location"`
	Active            bool      `json:"active"`
	SubscriptionStart time.Time `json:"subscriptionStart" validate:"required"`
	SubscriptionEnd   time.Time `json:"subscriptionEnd" validate:"required,gtefield=SubscriptionStart"`
	Logo              string    `json:"logo"`
}

func (ns *NewSchool) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	return core.TranslateError(core.Validate.Struct(ns))
}

func (ns NewSchool) School() School {
	return School{
		Name:              ns.Name,
		Email:             ns.Email,
		Phone:             ns.Phone,
		Address:           ns.Address,
		Location:          ns.Location,
		Active:            ns.Active,
		SubscriptionStart: ns.SubscriptionStart,
		SubscriptionEnd:   ns.SubscriptionEnd,
		Logo:              ns.Logo,
	}
}
