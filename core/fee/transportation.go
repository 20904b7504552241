package fee

import (
	"fmt"
	"time"

	"madaris/core/school"
	"madaris/core/student"
)

// CreateTransportationFee records the transportation fee created as a side
// effect of enrolling a student with transportation enabled. The amount is
// the student's custom override when set, otherwise the school's default
// for the chosen direction count.
func (svc *Service) CreateTransportationFee(st student.Student, settings school.Settings, dueDate time.Time) (*Fee, error) {
	if !st.HasTransportation() {
		return nil, nil
	}

	amount := st.TransportationFee
	if amount <= 0 {
		amount = settings.TransportationFeeOneWay
		if st.Transportation == student.TransportTwoWay {
			amount = settings.TransportationFeeTwoWay
		}
	}

	f := Fee{
		StudentID:          st.ID,
		FeeType:            TypeTransportation,
		Description:        transportationDescription(st),
		Amount:             amount,
		DueDate:            dueDate,
		SchoolID:           st.SchoolID,
		TransportationType: st.Transportation,
	}
	if err := svc.SaveFee(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func transportationDescription(st student.Student) string {
	way := "اتجاه واحد"
	if st.Transportation == student.TransportTwoWay {
		way = "اتجاهين"
	}
	desc := fmt.Sprintf("رسوم النقل - %s", way)
	switch st.TransportationDirection {
	case student.DirectionToSchool:
		desc += " - إلى المدرسة"
	case student.DirectionFromSchool:
		desc += " - من المدرسة"
	}
	return desc
}
