package student

import "madaris/core"

// Transportation types
const (
	TransportNone   = "none"
	TransportOneWay = "one-way"
	TransportTwoWay = "two-way"
)

// Transportation directions
const (
	DirectionToSchool   = "to-school"
	DirectionFromSchool = "from-school"
)

type Student struct {
	core.RecordMeta
	Name        string `json:"name"`
	StudentID   string `json:"studentId"` // human-facing code, e.g. S0042
	Grade       string `json:"grade"`
	ParentName  string `json:"parentName"`
	ParentEmail string `json:"parentEmail,omitempty"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp,omitempty"`
	Address     string `json:"address,omitempty"`

	Transportation          string  `json:"transportation"` // none | one-way | two-way
	TransportationDirection string  `json:"transportationDirection,omitempty"`
	TransportationFee       float64 `json:"transportationFee,omitempty"`
	CustomTransportationFee bool    `json:"customTransportationFee,omitempty"`

	SchoolID string `json:"schoolId"`
}

func (s *Student) HasTransportation() bool {
	return s.Transportation != "" && s.Transportation != TransportNone
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name                    string  `json:"name" validate:"required"`
	StudentID               string  `json:"studentId" validate:"required,min=4,max=10"`
	Grade                   string  `json:"grade" validate:"required,gradelevel"`
	ParentName              string  `json:"parentName" validate:"required"`
	ParentEmail             string  `json:"parentEmail" validate:"omitempty,email"`
	Phone                   string  `json:"phone" validate:"required,omanphone"`
	Whatsapp                string  `json:"whatsapp" validate:"omitempty,omanphone"`
	Address                 string  `json:"address"`
	Transportation          string  `json:"transportation" validate:"omitempty,oneof=none one-way two-way"`
	TransportationDirection string  `json:"transportationDirection" validate:"required_if=Transportation one-way,omitempty,oneof=to-school from-school"`
	TransportationFee       float64 `json:"transportationFee" validate:"omitempty,gt=0"`
	CustomTransportationFee bool    `json:"customTransportationFee"`
	SchoolID                string  `json:"schoolId" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.ParentName = core.CleanString(ns.ParentName)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	if ns.Transportation == "" {
		ns.Transportation = TransportNone
	}
	return core.TranslateError(core.Validate.Struct(ns))
}

func (ns NewStudent) Student() Student {
	return Student{
		Name:                    ns.Name,
		StudentID:               ns.StudentID,
		Grade:                   ns.Grade,
		ParentName:              ns.ParentName,
		ParentEmail:             ns.ParentEmail,
		Phone:                   ns.Phone,
		Whatsapp:                ns.Whatsapp,
		Address:                 ns.Address,
		Transportation:          ns.Transportation,
		TransportationDirection: ns.TransportationDirection,
		TransportationFee:       ns.TransportationFee,
		CustomTransportationFee: ns.CustomTransportationFee,
		SchoolID:                ns.SchoolID,
	}
}
