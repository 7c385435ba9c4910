package service

import (
	"context"
	"encoding/json"
	"sync"

	"text-summarizer-be/internal/dto"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService tracks usage from the summarizer event stream.
type IConsumerService interface {
	Consume(ctx context.Context) error
	Stats() *dto.StatsResponse
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	log        logger.ILogger

	mu    sync.RWMutex
	stats dto.StatsResponse
}

func NewConsumerService(subscriber message.Subscriber, topicName string, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	// invalid messages are acked too, retrying them cannot help
	defer msg.Ack()

	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Warn("ConsumerService", "failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.mu.Lock()
	switch event.Type {
	case events.TypeSummaryCompleted:
		cs.stats.Summaries++
		cs.stats.InputWords += toInt64(event.Data["input_words"])
		cs.stats.SummaryWords += toInt64(event.Data["summary_words"])
	case events.TypeSummarySkipped:
		cs.stats.Skipped++
	case events.TypeTranslationCompleted:
		cs.stats.Translations++
	}
	cs.mu.Unlock()

	cs.log.Info("ConsumerService", "event processed", map[string]interface{}{
		"type": event.Type,
		"data": event.Data,
	})
}

func (cs *consumerService) Stats() *dto.StatsResponse {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	snapshot := cs.stats
	return &snapshot
}

// JSON numbers decode as float64
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
