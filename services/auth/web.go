package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

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
	service       *service
	adminUsername string
	adminPassword string
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(credentialsStore mystore.Store[Credentials], sessionStore mystore.Store[Session], nower mytime.Nower, uuider myuuid.UUIDer, adminUsername string, adminPassword string, logger mylog.Logger) *webService {
	return &webService{
		service:       newService(credentialsStore, sessionStore, nower, uuider, logger),
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/admin/login", s.loginPage()).Methods("POST")
	router.HandleFunc("/api/admin/logout", s.logoutPage()).Methods("POST")
	router.HandleFunc("/api/admin/change-password", s.changePasswordPage()).Methods("POST")

	return s.service.ensureAdmin(c, s.adminUsername, s.adminPassword)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := loginRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		session, err := s.service.login(c, req.Username, req.Password)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, session)
	}
}

func (s webService) logoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		session, err := s.service.authenticate(c, bearerToken(r))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.logout(c, session.Token)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

func (s webService) changePasswordPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		session, err := s.service.authenticate(c, bearerToken(r))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		req := changePasswordRequest{}
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		if req.NewPassword == "" {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputErrorf("missing new password"))
			return
		}

		err = s.service.changePassword(c, session.Username, req.CurrentPassword, req.NewPassword)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.EmptyResponse{})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
