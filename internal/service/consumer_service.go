package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cim-memo-be/internal/entity"
	"cim-memo-be/internal/pkg/logger"
	"cim-memo-be/internal/repository/unitofwork"
	"cim-memo-be/pkg/events"
	pktNats "cim-memo-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ProgressNotifier pushes workspace progress updates in real time.
// Typically implemented by the WebSocket Hub.
type ProgressNotifier interface {
	Notify(workspaceID string, eventType string, payload map[string]interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event bus: every pipeline event is
// persisted to the audit tables, forwarded to NATS, and pushed to the
// workspace's websocket clients. The HTTP path never blocks on any of this.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pktNats.Publisher
	notifier   ProgressNotifier
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *pktNats.Publisher,
	notifier ProgressNotifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		notifier:   notifier,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // invalid payloads are never retriable
		return
	}

	if err := cs.persistAudit(ctx, event); err != nil {
		cs.logger.Error("ConsumerService", fmt.Sprintf("Failed to persist audit for %s", event.EventType()), map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	// Best-effort forwarding to the external bus.
	if cs.natsPub != nil {
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to forward event to NATS", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		}
	}

	// Per-call audit events are bookkeeping, not progress.
	if cs.notifier != nil && event.EventType() != events.TypeModelCall {
		if wsID, ok := event.Payload()["workspace_id"].(string); ok {
			cs.notifier.Notify(wsID, event.EventType(), event.Payload())
		}
	}

	msg.Ack()
}

func (cs *consumerService) persistAudit(ctx context.Context, event events.BaseEvent) error {
	switch event.EventType() {
	case events.TypeModelCall:
		return cs.persistGenerationLog(ctx, event)
	case events.TypeExportProduced:
		return cs.persistExportLog(ctx, event)
	default:
		// Progress events carry no billable call; nothing to record.
		return nil
	}
}

func (cs *consumerService) persistGenerationLog(ctx context.Context, event events.BaseEvent) error {
	payload := event.Payload()
	workspaceID, err := uuid.Parse(stringField(payload, "workspace_id"))
	if err != nil {
		cs.logger.Warn("ConsumerService", "Event without parseable workspace_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	logEntry := &entity.GenerationLog{
		Id:          uuid.New(),
		WorkspaceId: workspaceID,
		Stage:       stringField(payload, "stage"),
		Function:    stringField(payload, "function"),
		ModelOption: stringField(payload, "model_option"),
		Temperature: floatField(payload, "temperature"),
		DurationMs:  int64(floatField(payload, "duration_ms")),
		Success:     boolField(payload, "success"),
		ErrorText:   stringField(payload, "error"),
		Details:     payload,
		CreatedAt:   time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	return uow.GenerationLogRepository().Create(ctx, logEntry)
}

func (cs *consumerService) persistExportLog(ctx context.Context, event events.BaseEvent) error {
	payload := event.Payload()
	workspaceID, err := uuid.Parse(stringField(payload, "workspace_id"))
	if err != nil {
		cs.logger.Warn("ConsumerService", "Event without parseable workspace_id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	logEntry := &entity.ExportLog{
		Id:          uuid.New(),
		WorkspaceId: workspaceID,
		Artifact:    stringField(payload, "artifact"),
		Format:      stringField(payload, "format"),
		Success:     boolField(payload, "success"),
		ErrorText:   stringField(payload, "error"),
		CreatedAt:   time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	return uow.ExportLogRepository().Create(ctx, logEntry)
}

// JSON round-trips leave numbers as float64 and everything untyped; the
// helpers below tolerate missing keys.

func stringField(payload map[string]interface{}, key string) string {
	v, _ := payload[key].(string)
	return v
}

func floatField(payload map[string]interface{}, key string) float64 {
	v, _ := payload[key].(float64)
	return v
}

func boolField(payload map[string]interface{}, key string) bool {
	v, _ := payload[key].(bool)
	return v
}
