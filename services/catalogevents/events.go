package catalogevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/myevents"
)

const (
	TopicName          = "catalog"
	productCreatedName = TopicName + ".product.created"
	productUpdatedName = TopicName + ".product.updated"
	productDeletedName = TopicName + ".product.deleted"
)

type CatalogEventService interface {
	Subscribe(c context.Context) error
	OnProductCreated(c context.Context, topic string, event ProductCreated) error
	OnProductUpdated(c context.Context, topic string, event ProductUpdated) error
	OnProductDeleted(c context.Context, topic string, event ProductDeleted) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CatalogEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case productCreatedName:
		{
			event := ProductCreated{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnProductCreated(c, envelope.Topic, event)
		}
	case productUpdatedName:
		{
			event := ProductUpdated{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnProductUpdated(c, envelope.Topic, event)
		}
	case productDeletedName:
		{
			event := ProductDeleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnProductDeleted(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type ProductCreated struct {
	ProductUID  string
	ProductName string
	CategoryUID string
	Price       float64
}

func (e ProductCreated) GetEventTypeName() string {
	return productCreatedName
}

func (e ProductCreated) GetAggregateName() string {
	return e.ProductUID
}

type ProductUpdated struct {
	ProductUID  string
	ProductName string
	CategoryUID string
	Price       float64
}

func (e ProductUpdated) GetEventTypeName() string {
	return productUpdatedName
}

func (e ProductUpdated) GetAggregateName() string {
	return e.ProductUID
}

type ProductDeleted struct {
	ProductUID string
}

func (e ProductDeleted) GetEventTypeName() string {
	return productDeletedName
}

func (e ProductDeleted) GetAggregateName() string {
	return e.ProductUID
}
