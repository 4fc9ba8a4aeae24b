package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/electromart/storefrontbackend/lib/mycontext"
	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/myhttp"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(productStore mystore.Store[Product], categoryStore mystore.Store[Category], subcategoryStore mystore.Store[Subcategory], nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher, logger mylog.Logger) *webService {
	return &webService{
		service: newService(productStore, categoryStore, subcategoryStore, nower, uuider, pub, logger),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/products", s.listProductsPage()).Methods("GET")
	router.HandleFunc("/api/products", s.createProductPage()).Methods("POST")
	router.HandleFunc("/api/products/{productUID}", s.productDetailsPage()).Methods("GET")
	router.HandleFunc("/api/products/{productUID}", s.updateProductPage()).Methods("PUT")
	router.HandleFunc("/api/products/{productUID}", s.deleteProductPage()).Methods("DELETE")

	router.HandleFunc("/api/categories", s.listCategoriesPage()).Methods("GET")
	router.HandleFunc("/api/categories", s.createCategoryPage()).Methods("POST")
	router.HandleFunc("/api/categories/{categoryUID}", s.categoryDetailsPage()).Methods("GET")
	router.HandleFunc("/api/categories/{categoryUID}", s.updateCategoryPage()).Methods("PUT")
	router.HandleFunc("/api/categories/{categoryUID}", s.deleteCategoryPage()).Methods("DELETE")

	router.HandleFunc("/api/subcategories", s.listSubcategoriesPage()).Methods("GET")
	router.HandleFunc("/api/subcategories", s.createSubcategoryPage()).Methods("POST")
	router.HandleFunc("/api/subcategories/category/{categoryUID}", s.subcategoriesOfCategoryPage()).Methods("GET")
	router.HandleFunc("/api/subcategories/{subcategoryUID}", s.updateSubcategoryPage()).Methods("PUT")
	router.HandleFunc("/api/subcategories/{subcategoryUID}", s.deleteSubcategoryPage()).Methods("DELETE")

	return s.service.CreateTopics(c)
}

func (s webService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get("limit"))
		filter := productFilter{
			categoryUID:    query.Get("category"),
			subcategoryUID: query.Get("subcategory"),
			featuredOnly:   query.Get("featured") == "true",
			newOnly:        query.Get("new") == "true",
			limit:          limit,
		}

		products, err := s.service.listProducts(c, filter)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s webService) productDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProduct(c, mux.Vars(r)["productUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s webService) createProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product := Product{}
		err := json.NewDecoder(r.Body).Decode(&product)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if product.Name == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing name"))
			return
		}

		created, err := s.service.createProduct(c, product)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, created)
	}
}

func (s webService) updateProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product := Product{}
		err := json.NewDecoder(r.Body).Decode(&product)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		updated, err := s.service.updateProduct(c, mux.Vars(r)["productUID"], product)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s webService) deleteProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteProduct(c, mux.Vars(r)["productUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

func (s webService) listCategoriesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categories, err := s.service.listCategories(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, categories)
	}
}

func (s webService) categoryDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		category, err := s.service.getCategory(c, mux.Vars(r)["categoryUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, category)
	}
}

func (s webService) createCategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		category := Category{}
		err := json.NewDecoder(r.Body).Decode(&category)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if category.Name == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing name"))
			return
		}

		created, err := s.service.createCategory(c, category)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, created)
	}
}

func (s webService) updateCategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		category := Category{}
		err := json.NewDecoder(r.Body).Decode(&category)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		updated, err := s.service.updateCategory(c, mux.Vars(r)["categoryUID"], category)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s webService) deleteCategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteCategory(c, mux.Vars(r)["categoryUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

func (s webService) listSubcategoriesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		subcategories, err := s.service.listSubcategories(c, "")
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, subcategories)
	}
}

func (s webService) subcategoriesOfCategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		subcategories, err := s.service.listSubcategories(c, mux.Vars(r)["categoryUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, subcategories)
	}
}

func (s webService) createSubcategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		subcategory := Subcategory{}
		err := json.NewDecoder(r.Body).Decode(&subcategory)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if subcategory.Name == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing name"))
			return
		}

		created, err := s.service.createSubcategory(c, subcategory)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, created)
	}
}

func (s webService) updateSubcategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		subcategory := Subcategory{}
		err := json.NewDecoder(r.Body).Decode(&subcategory)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		updated, err := s.service.updateSubcategory(c, mux.Vars(r)["subcategoryUID"], subcategory)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s webService) deleteSubcategoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteSubcategory(c, mux.Vars(r)["subcategoryUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}
