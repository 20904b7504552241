package student

import (
	"fmt"

	"madaris/core"
)

// counter is a persisted per-school sequence backing student ID generation.
// A count-of-existing-students scheme reuses numbers after deletions; the
// stored sequence never goes backwards.
type counter struct {
	core.RecordMeta
	SchoolID string `json:"schoolId"`
	Next     int    `json:"next"`
}

// GenerateStudentID synthesizes the next human-facing student code for the
// school: "KG" prefix for kindergarten grades, "S" otherwise, followed by a
// 4-digit zero-padded sequence number.
func (svc *Service) GenerateStudentID(schoolID, grade string) (string, error) {
	prefix := "S"
	if core.IsKindergarten(grade) {
		prefix = "KG"
	}

	seq, err := svc.nextSequence(schoolID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func (svc *Service) nextSequence(schoolID string) (int, error) {
	all, err := svc.counters.List()
	if err != nil {
		return 0, err
	}

	var cnt counter
	for _, c := range all {
		if c.SchoolID == schoolID {
			cnt = c
			break
		}
	}
	if cnt.ID == "" {
		// first student of this school: start the sequence at the current
		// roster size so codes continue where the legacy scheme left off
		existing, err := svc.Filter(QueryFilter{SchoolID: schoolID})
		if err != nil {
			return 0, err
		}
		cnt.SchoolID = schoolID
		cnt.Next = len(existing)
	}

	cnt.Next++
	if err := svc.counters.Upsert(&cnt); err != nil {
		return 0, err
	}
	return cnt.Next, nil
}
