package sendgridmsg

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"madaris/core"
	"madaris/core/comms"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type service struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	logger     core.Logger
}

var _ comms.Sender = (*service)(nil)

// NewService delivers messages by email through the Sendgrid API. Parents
// without an email address on file cannot be reached this way.
func NewService(conf *core.Config, logger core.Logger) comms.Sender {
	return &service{
		key:        conf.SendgridAPIKey,
		from:       sgmail.NewEmail(conf.DefaultFromEmail.Name, conf.DefaultFromEmail.Address),
		subjPrefix: "[" + conf.AppName + "] ",
		logger:     logger,
	}
}

func (svc service) SendMessage(msg *comms.Message) error {
	if msg.ParentEmail == "" {
		return errors.Errorf("no parent email on file for student %s", msg.StudentName)
	}

	req := sendgrid.GetRequest(svc.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(svc.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return errors.Wrap(err, "sending message")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sending message - status: %d - Body: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (svc service) prepare(msg *comms.Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = svc.subjPrefix + msg.Template
	p.AddTos(sgmail.NewEmail(msg.ParentName, msg.ParentEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))
	return m
}
