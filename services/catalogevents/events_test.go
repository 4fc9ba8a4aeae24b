package catalogevents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/electromart/storefrontbackend/lib/mypublisher"
)

type recordingService struct {
	created []ProductCreated
	updated []ProductUpdated
	deleted []ProductDeleted
}

func (s *recordingService) Subscribe(c context.Context) error {
	return nil
}

func (s *recordingService) OnProductCreated(c context.Context, topic string, event ProductCreated) error {
	s.created = append(s.created, event)
	return nil
}

func (s *recordingService) OnProductUpdated(c context.Context, topic string, event ProductUpdated) error {
	s.updated = append(s.updated, event)
	return nil
}

func (s *recordingService) OnProductDeleted(c context.Context, topic string, event ProductDeleted) error {
	s.deleted = append(s.deleted, event)
	return nil
}

func TestDispatchProductCreated(t *testing.T) {
	c := context.TODO()
	service := &recordingService{}

	event := ProductCreated{
		ProductUID:  "p1",
		ProductName: "Frost-free fridge 350L",
		CategoryUID: "cat1",
		Price:       44999,
	}
	message := mypublisher.CreatePubsubMessage(TopicName, event)

	err := DispatchEvent(c, strings.NewReader(message), service)

	assert.NoError(t, err)
	assert.Equal(t, []ProductCreated{event}, service.created)
	assert.Empty(t, service.updated)
}

func TestDispatchProductDeleted(t *testing.T) {
	c := context.TODO()
	service := &recordingService{}

	message := mypublisher.CreatePubsubMessage(TopicName, ProductDeleted{ProductUID: "p1"})

	err := DispatchEvent(c, strings.NewReader(message), service)

	assert.NoError(t, err)
	assert.Equal(t, []ProductDeleted{{ProductUID: "p1"}}, service.deleted)
}

func TestDispatchUnknownEvent(t *testing.T) {
	c := context.TODO()
	service := &recordingService{}

	err := DispatchEvent(c, strings.NewReader(`{"message":{"data":"eyJFdmVudFR5cGVOYW1lIjoiY2F0YWxvZy5ub3BlIn0="}}`), service)

	assert.Error(t, err)
}
