package messaging

import (
	"context"
	"encoding/json"
	"time"

	"example.com/westo/services/garment/config"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Publisher publishes events to the message bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// MessageHandler processes a single received message
type MessageHandler func(ctx context.Context, event Event) error

// ServiceBus is an Azure Service Bus client for the garment events
// queue. When no connection string is configured the client is
// disabled and publishing becomes a no-op, which keeps local
// development working without a bus.
type ServiceBus struct {
	client    *azservicebus.Client
	sender    *azservicebus.Sender
	queueName string
	enabled   bool
}

// NewServiceBus creates a new Service Bus client
func NewServiceBus(cfg config.ServiceBusConfig) (*ServiceBus, error) {
	if cfg.ConnectionString == "" {
		log.Warn().Msg("Service Bus connection string not provided, messaging will be disabled")
		return &ServiceBus{enabled: false}, nil
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus client")
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus sender")
	}

	return &ServiceBus{
		client:    client,
		sender:    sender,
		queueName: cfg.QueueName,
		enabled:   true,
	}, nil
}

// Publish sends an event to the queue
func (s *ServiceBus) Publish(ctx context.Context, event Event) error {
	if !s.enabled {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	msg := &azservicebus.Message{
		Body: data,
		ApplicationProperties: map[string]interface{}{
			"type": event.Type,
			"time": time.Now().UTC().Format(time.RFC3339),
		},
	}

	return s.sender.SendMessage(ctx, msg, nil)
}

// ProcessMessages receives events from the queue and dispatches them to
// the handler until the context is cancelled. Messages are completed on
// success and abandoned on handler failure so the bus redelivers them.
func (s *ServiceBus) ProcessMessages(ctx context.Context, handler MessageHandler) error {
	if !s.enabled {
		<-ctx.Done()
		return nil
	}

	receiver, err := s.client.NewReceiverForQueue(s.queueName, &azservicebus.ReceiverOptions{
		ReceiveMode: azservicebus.ReceiveModePeekLock,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create Service Bus receiver")
	}
	defer receiver.Close(context.Background())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		messages, err := receiver.ReceiveMessages(ctx, 10, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to receive messages")
		}

		for _, msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Error().Err(err).Str("message_id", msg.MessageID).
					Msg("Failed to unmarshal event, dead-lettering message")
				if dlErr := receiver.DeadLetterMessage(ctx, msg, nil); dlErr != nil {
					log.Error().Err(dlErr).Msg("Failed to dead-letter message")
				}
				continue
			}

			if err := handler(ctx, event); err != nil {
				log.Error().Err(err).Str("type", event.Type).
					Msg("Failed to process event, abandoning message")
				if abErr := receiver.AbandonMessage(ctx, msg, nil); abErr != nil {
					log.Error().Err(abErr).Msg("Failed to abandon message")
				}
				continue
			}

			if err := receiver.CompleteMessage(ctx, msg, nil); err != nil {
				log.Error().Err(err).Msg("Failed to complete message")
			}
		}
	}
}

// Close closes the Service Bus client
func (s *ServiceBus) Close() error {
	if !s.enabled {
		return nil
	}

	if s.sender != nil {
		if err := s.sender.Close(context.Background()); err != nil {
			return err
		}
	}

	if s.client != nil {
		return s.client.Close(context.Background())
	}

	return nil
}
