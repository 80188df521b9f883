package rabbitmq

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"petspotter/internal/model"
)

type channelOpener interface {
	Channel() (*amqp.Channel, error)
}

type ListingEventPublisher struct {
	conn      channelOpener
	queueName string
}

func NewListingEventPublisher(conn *amqp.Connection, queueName string) *ListingEventPublisher {
	return &ListingEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ListingEventPublisher) Publish(ctx context.Context, event model.ListingEvent) error {
	payload, err := EncodeListingEvent(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := DeclareQueue(ch, p.queueName); err != nil {
		return err
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         "listing." + event.Action,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	); err != nil {
		return fmt.Errorf("publish listing event failed: %w", err)
	}
	return nil
}

func EncodeListingEvent(event model.ListingEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal listing event failed: %w", err)
	}
	return payload, nil
}

func DecodeListingEvent(body []byte) (model.ListingEvent, error) {
	var event model.ListingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return model.ListingEvent{}, fmt.Errorf("decode listing event failed: %w", err)
	}
	if event.ListingID == "" {
		return model.ListingEvent{}, fmt.Errorf("decode listing event failed: missing listing_id")
	}
	switch event.Action {
	case model.ListingActionCreated, model.ListingActionDeleted:
	default:
		return model.ListingEvent{}, fmt.Errorf("decode listing event failed: unknown action %q", event.Action)
	}
	return event, nil
}
