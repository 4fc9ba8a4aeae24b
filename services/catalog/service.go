package catalog

import (
	"context"

	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/services/catalogevents"
)

type service struct {
	productStore     mystore.Store[Product]
	categoryStore    mystore.Store[Category]
	subcategoryStore mystore.Store[Subcategory]
	nower            mytime.Nower
	uuider           myuuid.UUIDer
	publisher        mypublisher.Publisher
	logger           mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(productStore mystore.Store[Product], categoryStore mystore.Store[Category], subcategoryStore mystore.Store[Subcategory], nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher, logger mylog.Logger) *service {
	return &service{
		productStore:     productStore,
		categoryStore:    categoryStore,
		subcategoryStore: subcategoryStore,
		nower:            nower,
		uuider:           uuider,
		publisher:        pub,
		logger:           logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	return s.publisher.CreateTopic(c, catalogevents.TopicName)
}
