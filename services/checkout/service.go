package checkout

import (
	"context"

	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mymailer"
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/services/checkoutevents"
)

type service struct {
	orderStore    mystore.Store[Order]
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	mailer        mymailer.Mailer
	publisher     mypublisher.Publisher
	merchantEmail string
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(orderStore mystore.Store[Order], nower mytime.Nower, uuider myuuid.UUIDer, mailer mymailer.Mailer, pub mypublisher.Publisher, merchantEmail string, logger mylog.Logger) *service {
	return &service{
		orderStore:    orderStore,
		nower:         nower,
		uuider:        uuider,
		mailer:        mailer,
		publisher:     pub,
		merchantEmail: merchantEmail,
		logger:        logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	return s.publisher.CreateTopic(c, checkoutevents.TopicName)
}
