package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/electromart/storefrontbackend/lib/mycontext"
	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/myhttp"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/services/blog/render"
)

// uploads larger than this are rejected outright
const maxImageSize = 8 << 20

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(blogStore mystore.Store[Blog], imageStore mystore.Store[BlogImage], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: newService(blogStore, imageStore, nower, uuider, logger),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/blogs", s.listBlogsPage()).Methods("GET")
	router.HandleFunc("/api/blogs", s.createBlogPage()).Methods("POST")
	router.HandleFunc("/api/blogs/upload-image", s.uploadImagePage()).Methods("POST")
	router.HandleFunc("/api/blogs/{blogUID}", s.blogDetailsPage()).Methods("GET")
	router.HandleFunc("/api/blogs/{blogUID}/rendered", s.renderedBlogPage()).Methods("GET")
	router.HandleFunc("/api/blogs/{blogUID}", s.updateBlogPage()).Methods("PUT")
	router.HandleFunc("/api/blogs/{blogUID}", s.deleteBlogPage()).Methods("DELETE")

	router.HandleFunc(ImageBasePath+"/{imageName}", s.imagePage()).Methods("GET")
}

type renderedBlogResponse struct {
	Blog   Blog           `json:"blog"`
	Blocks []render.Block `json:"blocks"`
}

type uploadImageResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func (s webService) listBlogsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		blogs, err := s.service.listBlogs(c, limit)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, blogs)
	}
}

func (s webService) blogDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		blog, err := s.service.getBlog(c, mux.Vars(r)["blogUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, blog)
	}
}

func (s webService) renderedBlogPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		blog, blocks, err := s.service.renderBlog(c, mux.Vars(r)["blogUID"], myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, renderedBlogResponse{
			Blog:   blog,
			Blocks: blocks,
		})
	}
}

func (s webService) createBlogPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		blog := Blog{}
		err := json.NewDecoder(r.Body).Decode(&blog)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if blog.Title == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing title"))
			return
		}

		created, err := s.service.createBlog(c, blog)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, created)
	}
}

func (s webService) updateBlogPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		blog := Blog{}
		err := json.NewDecoder(r.Body).Decode(&blog)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		updated, err := s.service.updateBlog(c, mux.Vars(r)["blogUID"], blog)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, updated)
	}
}

func (s webService) deleteBlogPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteBlog(c, mux.Vars(r)["blogUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

func (s webService) uploadImagePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseMultipartForm(maxImageSize)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing upload: %s", err)))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("missing image: %s", err)))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}

		image, err := s.service.storeImage(c, header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, uploadImageResponse{
			Filename: image.Name,
			URL:      fmt.Sprintf("%s%s/%s", myhttp.HostnameWithScheme(r), ImageBasePath, image.Name),
		})
	}
}

func (s webService) imagePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		image, err := s.service.getImage(c, mux.Vars(r)["imageName"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		if image.ContentType != "" {
			w.Header().Set("Content-Type", image.ContentType)
		}
		w.WriteHeader(http.StatusOK)
		w.Write(image.Data)
	}
}
