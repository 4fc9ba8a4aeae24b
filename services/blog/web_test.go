package blog

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

var (
	blog1 = Blog{UID: "b1", Title: "Choosing a solar panel", Author: "admin", Content: "Plain intro.", CreatedAt: mytime.ExampleTime}
	blog2 = Blog{UID: "b2", Title: "Fridge maintenance", Author: "admin", Content: "[IMAGE:fridge.png]", CreatedAt: mytime.ExampleTime.Add(time.Hour)}
)

func TestBlogService(t *testing.T) {

	t.Run("List blogs newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, blogStore, _, _, _ := setup(t, ctrl)

		// given
		blogStore.Put(c, blog1.UID, blog1)
		blogStore.Put(c, blog2.UID, blog2)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/blogs", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Less(t, strings.Index(got, "b2"), strings.Index(got, "b1"))
	})

	t.Run("List blogs with limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, blogStore, _, _, _ := setup(t, ctrl)

		// given
		blogStore.Put(c, blog1.UID, blog1)
		blogStore.Put(c, blog2.UID, blog2)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/blogs?limit=1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "b2")
		assert.NotContains(t, got, "b1")
	})

	t.Run("Get blog not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/blogs/unknown", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Rendered blog resolves directives", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, blogStore, _, _, _ := setup(t, ctrl)

		// given
		blogStore.Put(c, blog2.UID, blog2)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/blogs/b2/rendered", nil)
		assert.NoError(t, err)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"kind": "image"`)
		assert.Contains(t, got, "http://localhost:8888/uploads/blog-images/fridge.png")
	})

	t.Run("Create blog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, blogStore, nower, uuider, _ := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("b3")

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/blogs",
			strings.NewReader(`{"title":"New post","author":"admin","content":"Hello **world**"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		blog, found, _ := blogStore.Get(c, "b3")
		assert.True(t, found)
		assert.Equal(t, "New post", blog.Title)
		assert.Equal(t, mytime.ExampleTime, blog.CreatedAt)
	})

	t.Run("Create blog without title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"author":"admin"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Update blog keeps creation time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, blogStore, nower, _, _ := setup(t, ctrl)

		// given
		blogStore.Put(c, blog1.UID, blog1)
		now := mytime.ExampleTime.Add(2 * time.Hour)
		nower.EXPECT().Now().Return(now)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/blogs/b1",
			strings.NewReader(`{"title":"Choosing a solar panel, revised","author":"admin","content":"Updated."}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		blog, _, _ := blogStore.Get(c, "b1")
		assert.Equal(t, "Choosing a solar panel, revised", blog.Title)
		assert.Equal(t, blog1.CreatedAt, blog.CreatedAt)
		assert.Equal(t, now, *blog.LastModified)
	})

	t.Run("Delete blog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, blogStore, _, _, _ := setup(t, ctrl)

		// given
		blogStore.Put(c, blog1.UID, blog1)

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/blogs/b1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		_, found, _ := blogStore.Get(c, "b1")
		assert.False(t, found)
	})

	t.Run("Upload and serve image", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, uuider, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("img-uid")

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("image", "photo.png")
		assert.NoError(t, err)
		part.Write([]byte("fake-png-bytes"))
		writer.Close()

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/blogs/upload-image", body)
		assert.NoError(t, err)
		request.Header.Set("Content-Type", writer.FormDataContentType())
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		assert.Contains(t, response.Body.String(), "img-uid-photo.png")

		// and the stored bytes are served back
		request, err = http.NewRequest(http.MethodGet, "/uploads/blog-images/img-uid-photo.png", nil)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "fake-png-bytes", response.Body.String())
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Blog], *mytime.MockNower, *myuuid.MockUUIDer, mystore.Store[BlogImage]) {
	t.Helper()

	c := context.TODO()
	blogStore, cleanup, err := mystore.New[Blog](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup)
	imageStore, cleanup2, err := mystore.New[BlogImage](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup2)

	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	sut := NewService(blogStore, imageStore, nower, uuider, mylog.New("blogtest"))
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, blogStore, nower, uuider, imageStore
}
