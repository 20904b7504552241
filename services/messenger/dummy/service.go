package dummymsg

import (
	"sync"

	"github.com/pkg/errors"

	"madaris/core/comms"
)

var errSendFailed = errors.New("message delivery failed")

// service records every message it is asked to deliver; tests inspect
// SentMessages instead of hitting a real gateway.
type service struct {
	mu           sync.Mutex
	SentMessages []comms.Message
	FailFor      map[string]bool // student IDs whose delivery should fail
}

var _ comms.Sender = (*service)(nil)

func NewService() *service {
	return &service{FailFor: make(map[string]bool)}
}

func (svc *service) SendMessage(msg *comms.Message) error {
	if svc.FailFor[msg.StudentID] {
		return errSendFailed
	}
	svc.mu.Lock()
	svc.SentMessages = append(svc.SentMessages, *msg)
	svc.mu.Unlock()
	return nil
}

func (svc *service) Reset() {
	svc.mu.Lock()
	svc.SentMessages = nil
	svc.mu.Unlock()
}
