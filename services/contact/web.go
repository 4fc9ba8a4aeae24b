package contact

import (
	"context"
	"fmt"
	"net/http"

	form "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/electromart/storefrontbackend/lib/mycontext"
	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/myhttp"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mymailer"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

type webService struct {
	service     *service
	formDecoder *form.Decoder
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(messageStore mystore.Store[ContactMessage], nower mytime.Nower, uuider myuuid.UUIDer, mailer mymailer.Mailer, merchantEmail string, logger mylog.Logger) *webService {
	return &webService{
		service:     newService(messageStore, nower, uuider, mailer, merchantEmail, logger),
		formDecoder: form.NewDecoder(),
		logger:      logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/contact", s.submitMessagePage()).Methods("POST")
	router.HandleFunc("/api/contact", s.listMessagesPage()).Methods("GET")
}

func (s webService) submitMessagePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err)))
			return
		}

		contactForm := ContactForm{}
		err = s.formDecoder.Decode(&contactForm, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err)))
			return
		}
		if contactForm.Name == "" || contactForm.Email == "" || contactForm.Message == "" {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputErrorf("missing name, email or message"))
			return
		}

		message, err := s.service.submitMessage(c, contactForm)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, message)
	}
}

func (s webService) listMessagesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		messages, err := s.service.listMessages(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, messages)
	}
}
