package worker

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"petspotter/internal/logging"
	"petspotter/internal/model"
	"petspotter/internal/platform/rabbitmq"
)

type ListingEventStore interface {
	Create(ctx context.Context, event *model.ListingEvent) error
}

// ListingEventWorker consumes listing events and writes them to the audit table.
type ListingEventWorker struct {
	conn      *amqp.Connection
	store     ListingEventStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewListingEventWorker(conn *amqp.Connection, store ListingEventStore, queueName string) *ListingEventWorker {
	return &ListingEventWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *ListingEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					logging.With("worker").Error().Err(err).Str("queue", w.queueName).Msg("drop listing event")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ListingEventWorker) handle(ctx context.Context, body []byte) error {
	event, err := rabbitmq.DecodeListingEvent(body)
	if err != nil {
		return err
	}
	return w.store.Create(ctx, &event)
}

func (w *ListingEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
