package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func TestPublishDonationEventSendsKeyedMessage(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	var sent *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		sent = msg
		return nil
	})

	p := NewPublisherWithProducer(producer, "")
	err := p.PublishDonationEvent(context.Background(), DonationEvent{
		EventType:  EventTypeDonationCreated,
		DonationID: 12,
		Actor:      "alice",
		NewStatus:  "Pending",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if sent.Topic != TopicDonationLifecycle {
		t.Fatalf("expected default topic, got %s", sent.Topic)
	}
	key, _ := sent.Key.Encode()
	if string(key) != "donation_12" {
		t.Fatalf("unexpected key %q", key)
	}
	raw, _ := sent.Value.Encode()
	var event DonationEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.EventID == "" || event.Timestamp.IsZero() {
		t.Fatalf("expected generated metadata, got %+v", event)
	}
	if event.Actor != "alice" || event.DonationID != 12 {
		t.Fatalf("unexpected payload %+v", event)
	}

	found := false
	for _, h := range sent.Headers {
		if string(h.Key) == "event_type" && string(h.Value) == EventTypeDonationCreated {
			found = true
		}
	}
	if !found {
		t.Fatal("missing event_type header")
	}
}

func TestPublishDonationEventReturnsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(errors.New("broker down"))

	p := NewPublisherWithProducer(producer, "custom-topic")
	if err := p.PublishDonationEvent(context.Background(), DonationEvent{EventType: EventTypeStatusChanged, DonationID: 1}); err == nil {
		t.Fatal("expected error")
	}
	_ = p.Close()
}
