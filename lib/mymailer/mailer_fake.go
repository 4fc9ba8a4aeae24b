package mymailer

import (
	"context"

	"github.com/electromart/storefrontbackend/lib/mylog"
)

// fakeMailer is used when no api key is configured: it only logs.
type fakeMailer struct {
	logger mylog.Logger
}

func NewFakeMailer() Mailer {
	return &fakeMailer{
		logger: mylog.New("fakeMailer"),
	}
}

func (m *fakeMailer) Send(c context.Context, msg Message) error {
	m.logger.Log(c, "", mylog.SeverityInfo, "Would send mail to %s with subject %q:\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}
