package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/usecase"
)

// Rescorer recomputes one contact's engagement score.
type Rescorer interface {
	Rescore(ctx context.Context, contactID string) (*entity.EngagementReport, error)
}

type Worker struct {
	Channel  *amqp.Channel
	Rescorer Rescorer
}

func NewWorker(ch *amqp.Channel, rescorer Rescorer) *Worker {
	return &Worker{
		Channel:  ch,
		Rescorer: rescorer,
	}
}

// Start consumes rescore messages until the channel closes. Acks are manual:
// malformed or failed messages are rejected without requeue so they land on
// the dead letter queue instead of looping.
func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("rescore worker: consume failed: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload usecase.RescorePayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("rescore worker: malformed message: %s", err)
				d.Nack(false, false)
				continue
			}

			if payload.ContactID == "" {
				log.Printf("rescore worker: message missing contact_id")
				d.Nack(false, false)
				continue
			}

			report, err := w.Rescorer.Rescore(context.Background(), payload.ContactID)
			if err != nil {
				if usecase.IsNotFound(err) {
					// Contact deleted between publish and consume. Nothing to do.
					log.Printf("rescore worker: contact %s no longer exists", payload.ContactID)
					d.Ack(false)
					continue
				}
				log.Printf("rescore worker: rescore of %s failed: %s", payload.ContactID, err)
				d.Nack(false, false)
				continue
			}

			log.Printf("rescore worker: contact %s scored %.1f after %s", payload.ContactID, report.Score, payload.Trigger)
			d.Ack(false)
		}
	}()

	log.Printf("rescore worker: waiting on queue '%s'", queueName)
	<-forever
}
