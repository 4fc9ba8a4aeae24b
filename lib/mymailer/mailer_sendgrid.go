package mymailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/electromart/storefrontbackend/lib/mylog"
)

type sendgridMailer struct {
	apiKey string
	logger mylog.Logger
}

func NewSendgridMailer(apiKey string) Mailer {
	return &sendgridMailer{
		apiKey: apiKey,
		logger: mylog.New("sendgridMailer"),
	}
}

func (m *sendgridMailer) Send(c context.Context, msg Message) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if msg.From == "" {
		return fmt.Errorf("from address is empty")
	}
	if msg.To == "" {
		return fmt.Errorf("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(msg.FromName, msg.From),
		msg.Subject,
		mail.NewEmail("", msg.To),
		msg.Body,
		fmt.Sprintf("<pre>%s</pre>", msg.Body),
	)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("error sending mail: %s", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("error sending mail: status=%d, body=%s", response.StatusCode, response.Body)
	}

	m.logger.Log(c, "", mylog.SeverityInfo, "Mail sent: status=%d, to=%s, subject=%s", response.StatusCode, msg.To, msg.Subject)

	return nil
}
