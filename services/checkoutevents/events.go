package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/myevents"
)

const (
	TopicName          = "checkout"
	orderSubmittedName = TopicName + ".submitted"
)

type CheckoutEventService interface {
	Subscribe(c context.Context) error
	OnOrderSubmitted(c context.Context, topic string, event OrderSubmitted) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case orderSubmittedName:
		{
			event := OrderSubmitted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderSubmitted(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type OrderSubmitted struct {
	OrderUID      string
	CustomerName  string
	CustomerEmail string
	ItemCount     int
	GrandTotal    float64
}

func (e OrderSubmitted) GetEventTypeName() string {
	return orderSubmittedName
}

func (e OrderSubmitted) GetAggregateName() string {
	return e.OrderUID
}
