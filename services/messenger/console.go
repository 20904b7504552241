// Package msgsvc provides the message delivery backends used by the comms
// service.
package msgsvc

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"madaris/core"
	"madaris/core/comms"
)

var (
	SentMessages = make([]comms.Message, 0)
	mu           sync.Mutex
)

type consoleSender struct {
	subjPrefix    string
	disableOutput bool
}

var _ comms.Sender = (*consoleSender)(nil)

// NewConsoleSender returns a Sender that writes messages to the log instead
// of delivering them; for local development.
func NewConsoleSender(conf *core.Config) comms.Sender {
	return &consoleSender{subjPrefix: "[" + conf.AppName + "] "}
}

func (svc consoleSender) SendMessage(msg *comms.Message) error {
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()

	if svc.disableOutput {
		return nil
	}

	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "To: %s <%s>\r\n", msg.ParentName, msg.Phone)
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Template)
	_, _ = fmt.Fprintf(body, "\r\n%s\r\n", msg.Body)
	log.Println(body.String())
	return nil
}

type consoleSenderMock struct {
	consoleSender
}

// NewConsoleSenderMock is the silent test variant.
func NewConsoleSenderMock(conf *core.Config) comms.Sender {
	return &consoleSenderMock{
		consoleSender: consoleSender{
			subjPrefix:    "[" + conf.AppName + "] ",
			disableOutput: true,
		},
	}
}
