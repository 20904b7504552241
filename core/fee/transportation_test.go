package fee

import (
	"strings"
	"testing"
	"time"

	"madaris/core/school"
	"madaris/core/student"
)

func TestService_CreateTransportationFee(t *testing.T) {
	settings := school.Settings{
		SchoolID:                "school-1",
		TransportationFeeOneWay: 150,
		TransportationFeeTwoWay: 300,
	}
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		transport  string
		direction  string
		customFee  float64
		wantNil    bool
		wantAmount float64
		wantIn     string
	}{
		{name: "no transportation", transport: student.TransportNone, wantNil: true},
		{name: "blank transportation", transport: "", wantNil: true},
		{name: "one way default", transport: student.TransportOneWay, direction: student.DirectionToSchool, wantAmount: 150, wantIn: "اتجاه واحد"},
		{name: "two way default", transport: student.TransportTwoWay, wantAmount: 300, wantIn: "اتجاهين"},
		{name: "custom override", transport: student.TransportTwoWay, customFee: 275, wantAmount: 275},
		{name: "direction in description", transport: student.TransportOneWay, direction: student.DirectionFromSchool, wantAmount: 150, wantIn: "من المدرسة"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := setup(t)
			st.Transportation = tt.transport
			st.TransportationDirection = tt.direction
			st.TransportationFee = tt.customFee

			f, err := svc.CreateTransportationFee(st, settings, due)
			if err != nil {
				t.Fatalf("CreateTransportationFee() failed, %v", err)
			}
			if tt.wantNil {
				if f != nil {
					t.Fatalf("CreateTransportationFee() = %+v, want nil", f)
				}
				return
			}
			if f == nil {
				t.Fatal("CreateTransportationFee() = nil, want a fee")
			}
			if f.Amount != tt.wantAmount {
				t.Errorf("Amount = %v, want %v", f.Amount, tt.wantAmount)
			}
			if f.FeeType != TypeTransportation {
				t.Errorf("FeeType = %s, want %s", f.FeeType, TypeTransportation)
			}
			if f.TransportationType != tt.transport {
				t.Errorf("TransportationType = %s, want %s", f.TransportationType, tt.transport)
			}
			if tt.wantIn != "" && !strings.Contains(f.Description, tt.wantIn) {
				t.Errorf("Description = %s, want it to contain %s", f.Description, tt.wantIn)
			}
		})
	}
}
