package mymailer

import "context"

// Message is an outbound mail as composed by the checkout and contact
// services: plain text only.
type Message struct {
	FromName string
	From     string
	To       string
	ReplyTo  string
	Subject  string
	Body     string
}

//go:generate mockgen -source=api.go -package mymailer -destination mailer_mock.go Mailer
type Mailer interface {
	Send(c context.Context, msg Message) error
}
