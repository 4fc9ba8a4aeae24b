package auth

import (
	"context"
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

func TestAuthService(t *testing.T) {

	t.Run("Login with valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("token-1")

		// when
		response := doLogin(t, router, `{"username":"admin","password":"letmein"}`)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "token-1")
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doLogin(t, router, `{"username":"admin","password":"guess"}`)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Login with unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doLogin(t, router, `{"username":"root","password":"letmein"}`)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Change password and login with it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider := setup(t, ctrl)

		// given a session
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		uuider.EXPECT().Create().Return("token-1")
		response := doLogin(t, router, `{"username":"admin","password":"letmein"}`)
		assert.Equal(t, 200, response.Code)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/admin/change-password",
			strings.NewReader(`{"current_password":"letmein","new_password":"s3cret"}`))
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer token-1")
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)

		// and the old password no longer works
		response = doLogin(t, router, `{"username":"admin","password":"letmein"}`)
		assert.Equal(t, 403, response.Code)

		// but the new one does
		uuider.EXPECT().Create().Return("token-2")
		response = doLogin(t, router, `{"username":"admin","password":"s3cret"}`)
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Change password without session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/admin/change-password",
			strings.NewReader(`{"current_password":"letmein","new_password":"s3cret"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Expired session is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, sessionStore, nower, _ := setup(t, ctrl)

		// given
		sessionStore.Put(c, "stale", Session{
			Token:     "stale",
			Username:  "admin",
			ExpiresAt: mytime.ExampleTime,
		})
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(time.Minute))

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/admin/logout", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer stale")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Logout removes session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, sessionStore, nower, _ := setup(t, ctrl)

		// given
		sessionStore.Put(c, "token-1", Session{
			Token:     "token-1",
			Username:  "admin",
			ExpiresAt: mytime.ExampleTime.Add(time.Hour),
		})
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/admin/logout", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer token-1")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		_, found, _ := sessionStore.Get(c, "token-1")
		assert.False(t, found)
	})
}

func doLogin(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	request, err := http.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Session], *mytime.MockNower, *myuuid.MockUUIDer) {
	t.Helper()

	c := context.TODO()
	credentialsStore, cleanup, err := mystore.New[Credentials](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup)
	sessionStore, cleanup2, err := mystore.New[Session](c)
	assert.NoError(t, err)
	t.Cleanup(cleanup2)

	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	sut := NewService(credentialsStore, sessionStore, nower, uuider, "admin", "letmein", mylog.New("authtest"))
	router := mux.NewRouter()
	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, sessionStore, nower, uuider
}
