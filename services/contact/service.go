package contact

import (
	"context"
	"fmt"
	"sort"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mymailer"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

const mailFromName = "Storefront contact form"

type service struct {
	messageStore  mystore.Store[ContactMessage]
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	mailer        mymailer.Mailer
	merchantEmail string
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(messageStore mystore.Store[ContactMessage], nower mytime.Nower, uuider myuuid.UUIDer, mailer mymailer.Mailer, merchantEmail string, logger mylog.Logger) *service {
	return &service{
		messageStore:  messageStore,
		nower:         nower,
		uuider:        uuider,
		mailer:        mailer,
		merchantEmail: merchantEmail,
		logger:        logger,
	}
}

// submitMessage keeps a copy of the enquiry and forwards it to the merchant.
func (s *service) submitMessage(c context.Context, form ContactForm) (ContactMessage, error) {
	message := ContactMessage{
		UID:       s.uuider.Create(),
		Form:      form,
		CreatedAt: s.nower.Now(),
	}

	s.logger.Log(c, message.UID, mylog.SeverityInfo, "Contact message %s from %s (%s)", message.UID, form.Name, form.Email)

	err := s.messageStore.Put(c, message.UID, message)
	if err != nil {
		return ContactMessage{}, myerrors.NewInternalError(err)
	}

	subject := form.Subject
	if subject == "" {
		subject = fmt.Sprintf("New enquiry from %s", form.Name)
	}

	err = s.mailer.Send(c, mymailer.Message{
		FromName: mailFromName,
		From:     s.merchantEmail,
		To:       s.merchantEmail,
		ReplyTo:  form.Email,
		Subject:  subject,
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s",
			form.Name, form.Email, form.Phone, form.Message),
	})
	if err != nil {
		return ContactMessage{}, myerrors.NewInternalError(fmt.Errorf("error mailing enquiry %s: %s", message.UID, err))
	}

	return message, nil
}

func (s *service) listMessages(c context.Context) ([]ContactMessage, error) {
	messages, err := s.messageStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	// newest first
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})

	return messages, nil
}
