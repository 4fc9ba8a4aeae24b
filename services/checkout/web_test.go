package checkout

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mymailer"
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/services/cart"
	"github.com/electromart/storefrontbackend/services/checkoutevents"
)

const merchantEmail = "orders@example.com"

func TestCheckoutService(t *testing.T) {

	t.Run("Submit order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, orderStore, snapshotStore, mocks := setup(t, ctrl)

		// given
		price := 44999.0
		original := 52999.0
		snapshots := cart.NewSnapshots(snapshotStore, "visitor1")
		err := snapshots.Save(c, cart.Lines{
			{ProductUID: "p1", Name: "Frost-free fridge 350L", Quantity: 2, Price: &price, OriginalPrice: &original, OnSale: true},
		})
		assert.NoError(t, err)

		orderUID := fmt.Sprintf("PP-%d-abcdef12", mytime.ExampleTime.UnixMilli())
		mocks.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		mocks.uuider.EXPECT().Create().Return("abcdef12-3456-7890-abcd-ef1234567890")
		mocks.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.OrderSubmitted{
			OrderUID:      orderUID,
			CustomerName:  "Amina",
			CustomerEmail: "amina@example.com",
			ItemCount:     2,
			GrandTotal:    89998,
		}).Return(nil)

		var sent mymailer.Message
		mocks.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(c context.Context, msg mymailer.Message) error {
				sent = msg
				return nil
			})

		// when
		request := submitRequest(t, url.Values{
			"name":    {"Amina"},
			"email":   {"amina@example.com"},
			"phone":   {"+254700000000"},
			"address": {"Nakuru"},
			"message": {"Deliver on Saturday please"},
		}, "visitor1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		assert.Contains(t, response.Body.String(), orderUID)

		order, found, _ := orderStore.Get(c, orderUID)
		assert.True(t, found)
		assert.Equal(t, "Amina", order.Customer.Name)
		assert.Equal(t, 89998.0, order.GrandTotal)

		assert.Equal(t, merchantEmail, sent.To)
		assert.Equal(t, "amina@example.com", sent.ReplyTo)
		assert.Equal(t, fmt.Sprintf("New Order - %s - Ksh 89998.00", orderUID), sent.Subject)
		assert.Contains(t, sent.Body, "Frost-free fridge 350L")
		assert.Contains(t, sent.Body, "Savings Made: Ksh 16000.00")

		// and the basket is emptied
		basket, _, err := snapshots.Load(c)
		assert.NoError(t, err)
		assert.Empty(t, basket)
	})

	t.Run("Submit order with missing contact details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request := submitRequest(t, url.Values{
			"name": {"Amina"},
		}, "visitor1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Submit order without basket identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request := submitRequest(t, url.Values{
			"name":  {"Amina"},
			"email": {"amina@example.com"},
			"phone": {"+254700000000"},
		}, "")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Submit order with empty basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request := submitRequest(t, url.Values{
			"name":  {"Amina"},
			"email": {"amina@example.com"},
			"phone": {"+254700000000"},
		}, "visitor1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Get order not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/orders/unknown", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func submitRequest(t *testing.T, values url.Values, cartUID string) *http.Request {
	t.Helper()

	request, err := http.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(values.Encode()))
	assert.NoError(t, err)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cartUID != "" {
		request.AddCookie(&http.Cookie{Name: cart.CookieName, Value: cartUID})
	}

	return request
}

type checkoutMocks struct {
	nower     *mytime.MockNower
	uuider    *myuuid.MockUUIDer
	mailer    *mymailer.MockMailer
	publisher *mypublisher.MockPublisher
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Order], mystore.Store[cart.SnapshotRecord], checkoutMocks) {
	t.Helper()

	c := context.TODO()
	orderStore, cleanup, err := mystore.New[Order](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup)
	snapshotStore, cleanup2, err := mystore.New[cart.SnapshotRecord](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup2)

	mocks := checkoutMocks{
		nower:     mytime.NewMockNower(ctrl),
		uuider:    myuuid.NewMockUUIDer(ctrl),
		mailer:    mymailer.NewMockMailer(ctrl),
		publisher: mypublisher.NewMockPublisher(ctrl),
	}
	mocks.publisher.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)

	sut := NewService(orderStore, snapshotStore, mocks.nower, mocks.uuider, mocks.mailer, mocks.publisher, merchantEmail, mylog.New("checkouttest"))
	router := mux.NewRouter()
	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, orderStore, snapshotStore, mocks
}
