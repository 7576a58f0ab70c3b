package service

import (
	"context"
	"encoding/json"
	"log"

	"hustlee-be/internal/dto"
	"hustlee-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains booking confirmation messages and sends the email off
// the request path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.BookingConfirmationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal confirmation message: %v", err)
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	log.Printf("[INFO] Sending booking confirmation for BookingId: %s", payload.BookingId)

	err := cs.emailService.SendBookingConfirmation(
		payload.StudentEmail,
		payload.MentorName,
		payload.Date,
		payload.StartTime,
		payload.EndTime,
	)
	if err != nil {
		log.Printf("[ERROR] Failed to send confirmation for booking %s: %v", payload.BookingId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
