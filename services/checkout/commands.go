package checkout

import (
	"context"
	"fmt"
	"sort"

	"github.com/electromart/storefrontbackend/lib/myerrors"
	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mymailer"
	"github.com/electromart/storefrontbackend/services/cart"
	"github.com/electromart/storefrontbackend/services/checkoutevents"
)

const mailFromName = "Storefront checkout"

// submitOrder freezes the basket into an order, persists it, announces it on
// the checkout topic and mails the merchant. The caller clears the basket
// only after all of that succeeded.
func (s *service) submitOrder(c context.Context, form OrderForm, basket cart.Lines) (Order, error) {
	if len(basket) == 0 {
		return Order{}, myerrors.NewInvalidInputErrorf("basket is empty")
	}

	order := Order{
		UID:        s.createOrderUID(),
		Customer:   form,
		Lines:      basket,
		Subtotal:   basket.TotalPrice(),
		Savings:    basket.TotalSavings(),
		GrandTotal: basket.TotalPrice(),
		CreatedAt:  s.nower.Now(),
	}

	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Submitting order %s (%d items, Ksh %.2f)", order.UID, basket.ItemCount(), order.GrandTotal)

	err := s.orderStore.RunInTransaction(c, func(c context.Context) error {
		err := s.orderStore.Put(c, order.UID, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.OrderSubmitted{
			OrderUID:      order.UID,
			CustomerName:  form.Name,
			CustomerEmail: form.Email,
			ItemCount:     basket.ItemCount(),
			GrandTotal:    order.GrandTotal,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	subject, body := composeOrderMail(order)
	err = s.mailer.Send(c, mymailer.Message{
		FromName: mailFromName,
		From:     s.merchantEmail,
		To:       s.merchantEmail,
		ReplyTo:  form.Email,
		Subject:  subject,
		Body:     body,
	})
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error mailing order %s: %s", order.UID, err))
	}

	return order, nil
}

// createOrderUID composes the storefront's order number: a PP prefix, the
// submission time in millis and a short nonce.
func (s *service) createOrderUID() string {
	nonce := s.uuider.Create()
	if len(nonce) > 8 {
		nonce = nonce[:8]
	}
	return fmt.Sprintf("PP-%d-%s", s.nower.Now().UnixMilli(), nonce)
}

func (s *service) listOrders(c context.Context) ([]Order, error) {
	orders, err := s.orderStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	// newest first
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (s *service) getOrder(c context.Context, orderUID string) (Order, error) {
	order, found, err := s.orderStore.Get(c, orderUID)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Order{}, myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
	}

	return order, nil
}
