package testimonials

import (
	"context"
	"fmt"
	"sort"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

type service struct {
	testimonialStore mystore.Store[Testimonial]
	nower            mytime.Nower
	uuider           myuuid.UUIDer
	logger           mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(testimonialStore mystore.Store[Testimonial], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		testimonialStore: testimonialStore,
		nower:            nower,
		uuider:           uuider,
		logger:           logger,
	}
}

func (s *service) listTestimonials(c context.Context) ([]Testimonial, error) {
	testimonials, err := s.testimonialStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	// newest first
	sort.Slice(testimonials, func(i, j int) bool {
		return testimonials[i].CreatedAt.After(testimonials[j].CreatedAt)
	})

	return testimonials, nil
}

func (s *service) createTestimonial(c context.Context, testimonial Testimonial) (Testimonial, error) {
	if testimonial.Rating < minRating || testimonial.Rating > maxRating {
		return Testimonial{}, myerrors.NewInvalidInputError(fmt.Errorf("rating %d out of range", testimonial.Rating))
	}

	testimonial.UID = s.uuider.Create()
	testimonial.CreatedAt = s.nower.Now()

	s.logger.Log(c, testimonial.UID, mylog.SeverityInfo, "Creating new testimonial %s from %s", testimonial.UID, testimonial.Name)

	err := s.testimonialStore.Put(c, testimonial.UID, testimonial)
	if err != nil {
		return Testimonial{}, myerrors.NewInternalError(err)
	}

	return testimonial, nil
}

func (s *service) updateTestimonial(c context.Context, testimonialUID string, updated Testimonial) (Testimonial, error) {
	if updated.Rating < minRating || updated.Rating > maxRating {
		return Testimonial{}, myerrors.NewInvalidInputError(fmt.Errorf("rating %d out of range", updated.Rating))
	}

	s.logger.Log(c, testimonialUID, mylog.SeverityInfo, "Updating testimonial %s", testimonialUID)

	var testimonial Testimonial
	err := s.testimonialStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.testimonialStore.Get(c, testimonialUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("testimonial with uid %s not found", testimonialUID))
		}

		testimonial = updated
		testimonial.UID = existing.UID
		testimonial.CreatedAt = existing.CreatedAt

		return s.testimonialStore.Put(c, testimonialUID, testimonial)
	})
	if err != nil {
		return Testimonial{}, err
	}

	return testimonial, nil
}

func (s *service) deleteTestimonial(c context.Context, testimonialUID string) error {
	s.logger.Log(c, testimonialUID, mylog.SeverityInfo, "Deleting testimonial %s", testimonialUID)

	err := s.testimonialStore.Delete(c, testimonialUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}
