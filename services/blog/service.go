package blog

import (
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

type service struct {
	blogStore  mystore.Store[Blog]
	imageStore mystore.Store[BlogImage]
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(blogStore mystore.Store[Blog], imageStore mystore.Store[BlogImage], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		blogStore:  blogStore,
		imageStore: imageStore,
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
	}
}
