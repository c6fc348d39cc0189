package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/twogether-backend/pkg/events"
	"github.com/chris/twogether-backend/pkg/events/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSQSPublisher(t *testing.T) {
	event := events.Event{
		Type:       events.MomentRecorded,
		CoupleID:   "couple-1",
		AccountID:  "acc-1",
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Payload:    map[string]string{"momentId": "m-1"},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			var got events.Event
			if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
				return false
			}
			return *in.QueueUrl == "https://sqs.local/queue" &&
				got.Type == events.MomentRecorded &&
				*in.MessageAttributes["event_type"].StringValue == "moment.recorded"
		})).Return(&sqs.SendMessageOutput{}, nil)

		p := events.NewSQSPublisher(mockClient, "https://sqs.local/queue")
		err := p.Publish(context.Background(), event)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		p := events.NewSQSPublisher(mockClient, "https://sqs.local/queue")
		err := p.Publish(context.Background(), event)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
		mockClient.AssertExpectations(t)
	})
}

func TestNoOpPublisher(t *testing.T) {
	p := &events.NoOpPublisher{}
	assert.NoError(t, p.Publish(context.Background(), events.Event{Type: events.CoinsSpent}))
}

func TestEmitSwallowsErrors(t *testing.T) {
	p := new(mocks.Publisher)
	ev := events.Event{Type: events.CoinsSpent, CoupleID: "c1"}
	p.On("Publish", mock.Anything, ev).Return(errors.New("queue down")).Once()

	assert.NotPanics(t, func() { events.Emit(context.Background(), p, ev) })
	assert.NotPanics(t, func() { events.Emit(context.Background(), nil, ev) })
	p.AssertExpectations(t)
}
