package service

import (
	"context"
	"encoding/json"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	ConsumeNoteActivity(ctx context.Context) error
}

// consumerService drains the note activity topic into the audit trail log.
// It runs for the lifetime of the process on its own goroutine.
type consumerService struct {
	subscriber  message.Subscriber
	topic       string
	auditLogger logger.ILogger
	logger      logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topic string, auditLogger, logger logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topic:       topic,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

func (s *consumerService) ConsumeNoteActivity(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	s.logger.Info("consumer_service", "note activity consumer started", map[string]interface{}{
		"topic": s.topic,
	})

	for msg := range messages {
		var activity dto.NoteActivityMessage
		if err := json.Unmarshal(msg.Payload, &activity); err != nil {
			s.logger.Warn("consumer_service", "dropping malformed activity message", map[string]interface{}{
				"message_id": msg.UUID,
				"error":      err.Error(),
			})
			msg.Ack()
			continue
		}

		s.auditLogger.Info("note_activity", activity.Action, map[string]interface{}{
			"note_id":  activity.NoteId.String(),
			"actor_id": activity.ActorId.String(),
		})
		msg.Ack()
	}

	return nil
}
