package testimonials

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/electromart/storefrontbackend/lib/mycontext"
	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/myhttp"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(testimonialStore mystore.Store[Testimonial], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: newService(testimonialStore, nower, uuider, logger),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/testimonials", s.listTestimonialsPage()).Methods("GET")
	router.HandleFunc("/api/testimonials", s.createTestimonialPage()).Methods("POST")
	router.HandleFunc("/api/testimonials/{testimonialUID}", s.updateTestimonialPage()).Methods("PUT")
	router.HandleFunc("/api/testimonials/{testimonialUID}", s.deleteTestimonialPage()).Methods("DELETE")
}

func (s webService) listTestimonialsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		testimonials, err := s.service.listTestimonials(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, testimonials)
	}
}

func (s webService) createTestimonialPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		testimonial := Testimonial{}
		err := json.NewDecoder(r.Body).Decode(&testimonial)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if testimonial.Name == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing name"))
			return
		}

		created, err := s.service.createTestimonial(c, testimonial)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, created)
	}
}

func (s webService) updateTestimonialPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		testimonial := Testimonial{}
		err := json.NewDecoder(r.Body).Decode(&testimonial)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		updated, err := s.service.updateTestimonial(c, mux.Vars(r)["testimonialUID"], testimonial)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s webService) deleteTestimonialPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteTestimonial(c, mux.Vars(r)["testimonialUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}
