package checkout

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
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/services/cart"
)

type webService struct {
	service       *service
	snapshotStore mystore.Store[cart.SnapshotRecord]
	formDecoder   *form.Decoder
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(orderStore mystore.Store[Order], snapshotStore mystore.Store[cart.SnapshotRecord], nower mytime.Nower, uuider myuuid.UUIDer, mailer mymailer.Mailer, pub mypublisher.Publisher, merchantEmail string, logger mylog.Logger) *webService {
	return &webService{
		service:       newService(orderStore, nower, uuider, mailer, pub, merchantEmail, logger),
		snapshotStore: snapshotStore,
		formDecoder:   form.NewDecoder(),
		logger:        logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/checkout", s.submitOrderPage()).Methods("POST")
	router.HandleFunc("/api/orders", s.listOrdersPage()).Methods("GET")
	router.HandleFunc("/api/orders/{orderUID}", s.orderDetailsPage()).Methods("GET")

	return s.service.CreateTopics(c)
}

func (s webService) submitOrderPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err)))
			return
		}

		orderForm := OrderForm{}
		err = s.formDecoder.Decode(&orderForm, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err)))
			return
		}
		if orderForm.Name == "" || orderForm.Email == "" || orderForm.Phone == "" {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputErrorf("missing name, email or phone"))
			return
		}

		uid := cart.CartUID(r)
		if uid == "" {
			errorWriter.WriteError(c, w, 4, myerrors.NewInvalidInputErrorf("basket is empty"))
			return
		}

		snapshots := cart.NewSnapshots(s.snapshotStore, uid)
		basket, _, err := snapshots.Load(c)
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInternalError(err))
			return
		}

		order, err := s.service.submitOrder(c, orderForm, basket)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		// The order is safe: empty the basket for the next visit
		err = snapshots.Save(c, cart.Lines{})
		if err != nil {
			s.logger.Log(c, order.UID, mylog.SeverityWarn, "Error clearing basket %s after order %s: %s", uid, order.UID, err)
		}

		errorWriter.Write(c, w, http.StatusCreated, order)
	}
}

func (s webService) listOrdersPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orders, err := s.service.listOrders(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func (s webService) orderDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		order, err := s.service.getOrder(c, mux.Vars(r)["orderUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}
