package checkoutevents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/electromart/storefrontbackend/lib/mypublisher"
)

type recordingService struct {
	submitted []OrderSubmitted
}

func (s *recordingService) Subscribe(c context.Context) error {
	return nil
}

func (s *recordingService) OnOrderSubmitted(c context.Context, topic string, event OrderSubmitted) error {
	s.submitted = append(s.submitted, event)
	return nil
}

func TestDispatchOrderSubmitted(t *testing.T) {
	c := context.TODO()
	service := &recordingService{}

	event := OrderSubmitted{
		OrderUID:      "PP-1740000000000-abcdef12",
		CustomerName:  "Amina",
		CustomerEmail: "amina@example.com",
		ItemCount:     2,
		GrandTotal:    89998,
	}
	message := mypublisher.CreatePubsubMessage(TopicName, event)

	err := DispatchEvent(c, strings.NewReader(message), service)

	assert.NoError(t, err)
	assert.Equal(t, []OrderSubmitted{event}, service.submitted)
}

func TestDispatchGarbage(t *testing.T) {
	c := context.TODO()
	service := &recordingService{}

	err := DispatchEvent(c, strings.NewReader("not json"), service)

	assert.Error(t, err)
	assert.Empty(t, service.submitted)
}
