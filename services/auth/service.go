package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
)

type service struct {
	credentialsStore mystore.Store[Credentials]
	sessionStore     mystore.Store[Session]
	nower            mytime.Nower
	uuider           myuuid.UUIDer
	logger           mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(credentialsStore mystore.Store[Credentials], sessionStore mystore.Store[Session], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		credentialsStore: credentialsStore,
		sessionStore:     sessionStore,
		nower:            nower,
		uuider:           uuider,
		logger:           logger,
	}
}

// ensureAdmin seeds the admin account on first boot. An already existing
// account is left untouched so a changed password survives restarts.
func (s *service) ensureAdmin(c context.Context, username string, password string) error {
	return s.credentialsStore.RunInTransaction(c, func(c context.Context) error {
		_, found, err := s.credentialsStore.Get(c, username)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if found {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		s.logger.Log(c, username, mylog.SeverityInfo, "Seeding admin account %s", username)

		return s.credentialsStore.Put(c, username, Credentials{
			Username:     username,
			PasswordHash: hash,
		})
	})
}

func (s *service) login(c context.Context, username string, password string) (Session, error) {
	credentials, found, err := s.credentialsStore.Get(c, username)
	if err != nil {
		return Session{}, myerrors.NewInternalError(err)
	}
	if !found || bcrypt.CompareHashAndPassword(credentials.PasswordHash, []byte(password)) != nil {
		// Same error for unknown user and wrong password
		return Session{}, myerrors.NewAuthenticationError(fmt.Errorf("invalid credentials"))
	}

	session := Session{
		Token:     s.uuider.Create(),
		Username:  username,
		ExpiresAt: s.nower.Now().Add(sessionDuration),
	}

	s.logger.Log(c, username, mylog.SeverityInfo, "Admin %s logged in", username)

	err = s.sessionStore.Put(c, session.Token, session)
	if err != nil {
		return Session{}, myerrors.NewInternalError(err)
	}

	return session, nil
}

func (s *service) logout(c context.Context, token string) error {
	err := s.sessionStore.Delete(c, token)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

// authenticate resolves a bearer token into the logged-in session.
func (s *service) authenticate(c context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, myerrors.NewAuthenticationError(fmt.Errorf("missing token"))
	}

	session, found, err := s.sessionStore.Get(c, token)
	if err != nil {
		return Session{}, myerrors.NewInternalError(err)
	}
	if !found || s.nower.Now().After(session.ExpiresAt) {
		return Session{}, myerrors.NewAuthenticationError(fmt.Errorf("invalid or expired session"))
	}

	return session, nil
}

func (s *service) changePassword(c context.Context, username string, currentPassword string, newPassword string) error {
	return s.credentialsStore.RunInTransaction(c, func(c context.Context) error {
		credentials, found, err := s.credentialsStore.Get(c, username)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || bcrypt.CompareHashAndPassword(credentials.PasswordHash, []byte(currentPassword)) != nil {
			return myerrors.NewAuthenticationError(fmt.Errorf("invalid credentials"))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		credentials.PasswordHash = hash

		s.logger.Log(c, username, mylog.SeverityInfo, "Admin %s changed password", username)

		return s.credentialsStore.Put(c, username, credentials)
	})
}
