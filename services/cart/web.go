package cart

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
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

// CookieName identifies a visitor's basket across requests.
const CookieName = "cartUID"

type webService struct {
	snapshotStore mystore.Store[SnapshotRecord]
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(snapshotStore mystore.Store[SnapshotRecord], uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		snapshotStore: snapshotStore,
		uuider:        uuider,
		logger:        logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/cart", s.getBasketPage()).Methods("GET")
	router.HandleFunc("/api/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/cart/items/{productUID}", s.setQuantityPage()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{productUID}", s.removeItemPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/clear", s.clearPage()).Methods("POST")
}

type basketResponse struct {
	Items        Lines   `json:"items"`
	TotalItems   int     `json:"total_items"`
	TotalPrice   float64 `json:"total_price"`
	TotalSavings float64 `json:"total_savings"`
}

type addItemRequest struct {
	Product  Snapshot `json:"product"`
	Quantity *int     `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// StoreForRequest hydrates the basket of the visitor identified by the cart
// cookie, creating a fresh identity when none exists yet.
func (s webService) StoreForRequest(c context.Context, w http.ResponseWriter, r *http.Request) *Store {
	uid := CartUID(r)
	if uid == "" {
		uid = s.uuider.Create()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    uid,
		Path:     "/",
		HttpOnly: true,
	})

	return NewStore(c, NewSnapshots(s.snapshotStore, uid), s.logger)
}

// CartUID returns the visitor's basket identity, or empty when absent.
func CartUID(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s webService) getBasketPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		store := s.StoreForRequest(c, w, r)

		errorWriter.Write(c, w, http.StatusOK, basketResponseFrom(store))
	}
}

func (s webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := addItemRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if req.Product.ProductUID == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing product id"))
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		s.logger.Log(c, req.Product.ProductUID, mylog.SeverityInfo, "Add %d x product %s to basket", quantity, req.Product.ProductUID)

		store := s.StoreForRequest(c, w, r)
		err = store.AddItem(c, req.Product, quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basketResponseFrom(store))
	}
}

func (s webService) setQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		req := setQuantityRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		s.logger.Log(c, productUID, mylog.SeverityInfo, "Set quantity of product %s to %d", productUID, req.Quantity)

		store := s.StoreForRequest(c, w, r)
		err = store.SetQuantity(c, productUID, req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basketResponseFrom(store))
	}
}

func (s webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		s.logger.Log(c, productUID, mylog.SeverityInfo, "Remove product %s from basket", productUID)

		store := s.StoreForRequest(c, w, r)
		err := store.RemoveItem(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basketResponseFrom(store))
	}
}

func (s webService) clearPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		s.logger.Log(c, "", mylog.SeverityInfo, "Clear basket")

		store := s.StoreForRequest(c, w, r)
		err := store.Clear(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basketResponseFrom(store))
	}
}

func basketResponseFrom(store *Store) basketResponse {
	return basketResponse{
		Items:        store.Lines(),
		TotalItems:   store.TotalItemCount(),
		TotalPrice:   store.TotalPrice(),
		TotalSavings: store.TotalSavings(),
	}
}
