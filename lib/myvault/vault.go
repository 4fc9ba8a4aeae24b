package myvault

import (
	"context"

	"github.com/electromart/storefrontbackend/lib/mystore"
)

const (
	MailAPIKey = "mailApiKey"
)

type Secret struct {
	Value string `datastore:",noindex"`
}

type Vault interface {
	Put(c context.Context, uid string, secret Secret) error
	Get(c context.Context, uid string) (Secret, bool, error)
}

func New(c context.Context) (Vault, func(), error) {
	store, cleanup, err := mystore.New[Secret](c)
	if err != nil {
		return nil, nil, err
	}
	return vault{store: store}, cleanup, nil
}

type vault struct {
	store mystore.Store[Secret]
}

func (v vault) Put(c context.Context, uid string, secret Secret) error {
	return v.store.Put(c, uid, secret)
}

func (v vault) Get(c context.Context, uid string) (Secret, bool, error) {
	return v.store.Get(c, uid)
}
