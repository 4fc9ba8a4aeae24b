package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/services/catalogevents"
)

var (
	fridgePrice    = 44999.0
	fridgeOriginal = 52999.0

	fridge = Product{
		UID:           "p1",
		Name:          "Frost-free fridge 350L",
		Price:         fridgePrice,
		OriginalPrice: &fridgeOriginal,
		IsOnSale:      true,
		CategoryUID:   "cat1",
		IsFeatured:    true,
		Features:      []string{"No-frost cooling", "Energy class A"},
		CreatedAt:     mytime.ExampleTime,
	}
	kettle = Product{
		UID:         "p2",
		Name:        "Cordless kettle 1.7L",
		Price:       2499,
		CategoryUID: "cat2",
		IsNew:       true,
		CreatedAt:   mytime.ExampleTime,
	}
)

func TestProducts(t *testing.T) {

	t.Run("List products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.products.Put(c, fridge.UID, fridge)
		stores.products.Put(c, kettle.UID, kettle)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/products", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "p1")
		assert.Contains(t, response.Body.String(), "p2")
	})

	t.Run("List featured products only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.products.Put(c, fridge.UID, fridge)
		stores.products.Put(c, kettle.UID, kettle)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/products?featured=true", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "p1")
		assert.NotContains(t, response.Body.String(), "p2")
	})

	t.Run("List products of category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.products.Put(c, fridge.UID, fridge)
		stores.products.Put(c, kettle.UID, kettle)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/products?category=cat2", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.NotContains(t, response.Body.String(), "p1")
		assert.Contains(t, response.Body.String(), "p2")
	})

	t.Run("Get product not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/products/unknown", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Create product publishes event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, nower, uuider, publisher := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("p3")
		publisher.EXPECT().Publish(gomock.Any(), catalogevents.TopicName, catalogevents.ProductCreated{
			ProductUID:  "p3",
			ProductName: "Ceiling fan",
			CategoryUID: "cat2",
			Price:       5999,
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/products",
			strings.NewReader(`{"name":"Ceiling fan","price":5999,"category_id":"cat2"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		product, found, _ := stores.products.Get(c, "p3")
		assert.True(t, found)
		assert.Equal(t, "Ceiling fan", product.Name)
		assert.Equal(t, mytime.ExampleTime, product.CreatedAt)
	})

	t.Run("Create product without name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"price":100}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Update product keeps creation time and publishes event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, publisher := setup(t, ctrl)

		// given
		stores.products.Put(c, kettle.UID, kettle)
		publisher.EXPECT().Publish(gomock.Any(), catalogevents.TopicName, catalogevents.ProductUpdated{
			ProductUID:  "p2",
			ProductName: "Cordless kettle 2.0L",
			CategoryUID: "cat2",
			Price:       2799,
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/products/p2",
			strings.NewReader(`{"name":"Cordless kettle 2.0L","price":2799,"category_id":"cat2"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		product, _, _ := stores.products.Get(c, "p2")
		assert.Equal(t, "Cordless kettle 2.0L", product.Name)
		assert.Equal(t, kettle.CreatedAt, product.CreatedAt)
	})

	t.Run("Delete product publishes event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, publisher := setup(t, ctrl)

		// given
		stores.products.Put(c, fridge.UID, fridge)
		publisher.EXPECT().Publish(gomock.Any(), catalogevents.TopicName, catalogevents.ProductDeleted{
			ProductUID: "p1",
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/products/p1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		_, found, _ := stores.products.Get(c, "p1")
		assert.False(t, found)
	})
}

func TestCategories(t *testing.T) {

	t.Run("Create category normalizes unknown icon", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, uuider, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("cat1")

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/categories",
			strings.NewReader(`{"name":"Home appliances","icon":"teleporter"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		category, found, _ := stores.categories.Get(c, "cat1")
		assert.True(t, found)
		assert.Equal(t, IconDefault, category.Icon)
	})

	t.Run("List categories sorted by name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.categories.Put(c, "cat1", Category{UID: "cat1", Name: "Televisions", Icon: IconTelevision})
		stores.categories.Put(c, "cat2", Category{UID: "cat2", Name: "Audio", Icon: IconSpeaker})

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/categories", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Less(t, strings.Index(got, "Audio"), strings.Index(got, "Televisions"))
	})

	t.Run("Delete category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.categories.Put(c, "cat1", Category{UID: "cat1", Name: "Televisions", Icon: IconTelevision})

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/categories/cat1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		_, found, _ := stores.categories.Get(c, "cat1")
		assert.False(t, found)
	})
}

func TestSubcategories(t *testing.T) {

	t.Run("Create subcategory requires existing category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/subcategories",
			strings.NewReader(`{"name":"Soundbars","category_id":"unknown"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("List subcategories of category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.subcategories.Put(c, "sub1", Subcategory{UID: "sub1", Name: "Soundbars", CategoryUID: "cat2"})
		stores.subcategories.Put(c, "sub2", Subcategory{UID: "sub2", Name: "Smart TVs", CategoryUID: "cat1"})

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/subcategories/category/cat2", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "sub1")
		assert.NotContains(t, response.Body.String(), "sub2")
	})
}

type catalogStores struct {
	products      mystore.Store[Product]
	categories    mystore.Store[Category]
	subcategories mystore.Store[Subcategory]
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, catalogStores, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	t.Helper()

	c := context.TODO()
	productStore, cleanup, err := mystore.New[Product](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup)
	categoryStore, cleanup2, err := mystore.New[Category](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup2)
	subcategoryStore, cleanup3, err := mystore.New[Subcategory](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup3)

	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), catalogevents.TopicName).Return(nil)

	sut := NewService(productStore, categoryStore, subcategoryStore, nower, uuider, publisher, mylog.New("catalogtest"))
	router := mux.NewRouter()
	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, catalogStores{productStore, categoryStore, subcategoryStore}, nower, uuider, publisher
}
