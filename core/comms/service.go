package comms

import (
	"time"

	"madaris/core"
	"madaris/core/student"
)

// Sender delivers a rendered message to the parent. Implementations live
// under services/messenger.
type Sender interface {
	SendMessage(msg *Message) error
}

// Recipient pairs a student with the figures substituted into the template
// for them.
type Recipient struct {
	Student student.Student
	Amount  float64
	Date    time.Time
}

type Service struct {
	messages *core.Collection[Message, *Message]
	sender   Sender
	log      core.Logger
}

func NewService(store *core.Store, sender Sender, log core.Logger) *Service {
	return &Service{
		messages: core.NewCollection[Message, *Message](store, "messages"),
		sender:   sender,
		log:      log,
	}
}

// Query returns sent messages, optionally filtered by school then student.
func (svc *Service) Query(schoolID, studentID string) ([]Message, error) {
	all, err := svc.messages.List()
	if err != nil {
		return nil, err
	}
	matched := all[:0]
	for _, msg := range all {
		if schoolID != "" && msg.SchoolID != schoolID {
			continue
		}
		if studentID != "" && msg.StudentID != studentID {
			continue
		}
		matched = append(matched, msg)
	}
	return matched, nil
}

// Send renders body once per recipient, dispatches it through the sender
// and persists every message with its delivery outcome. A failed delivery
// does not stop the batch.
func (svc *Service) Send(recipients []Recipient, templateName, body string) ([]Message, error) {
	if templateName == "" {
		templateName = CustomTemplateName
	}

	sent := make([]Message, 0, len(recipients))
	for _, rcp := range recipients {
		st := rcp.Student
		msg := Message{
			StudentID:   st.ID,
			StudentName: st.Name,
			Grade:       st.Grade,
			ParentName:  st.ParentName,
			ParentEmail: st.ParentEmail,
			Phone:       st.Phone,
			Template:    templateName,
			Body: Render(body, TemplateData{
				Name:   st.Name,
				Amount: rcp.Amount,
				Date:   rcp.Date,
			}),
			SentAt:   core.Now(),
			Status:   StatusPending,
			SchoolID: st.SchoolID,
		}

		if err := svc.sender.SendMessage(&msg); err != nil {
			msg.Status = StatusFailed
			svc.log.Warn("message delivery failed", map[string]interface{}{
				"studentId": st.ID, "error": err.Error(),
			})
		} else {
			msg.Status = StatusDelivered
		}

		if err := svc.messages.Upsert(&msg); err != nil {
			return sent, err
		}
		sent = append(sent, msg)
	}
	return sent, nil
}
