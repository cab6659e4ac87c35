package service

import (
	"encoding/json"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishNoteActivity(activity *dto.NoteActivityMessage) error
}

// publisherService pushes note activity onto the in-process message bus.
// Publishing is best effort; the request that triggered the activity has
// already succeeded by the time this runs.
type publisherService struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewPublisherService(publisher message.Publisher, topic string, logger logger.ILogger) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

func (s *publisherService) PublishNoteActivity(activity *dto.NoteActivityMessage) error {
	payload, err := json.Marshal(activity)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Warn("publisher_service", "failed to publish note activity", map[string]interface{}{
			"action": activity.Action,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}
