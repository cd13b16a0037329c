package service

import (
	"context"
	"encoding/json"

	"docedit-be/internal/dto"
	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/repository/specification"
	"docedit-be/internal/repository/unitofwork"
	"docedit-be/pkg/bridge"
	"docedit-be/pkg/lexical"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// previewConsumerService renders the Markdown preview of uploaded originals.
type previewConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	parser     *lexical.Parser
	logger     logger.ILogger
}

func NewPreviewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &previewConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		parser:     lexical.NewParser(),
		logger:     log,
	}
}

func (cs *previewConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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

func (cs *previewConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PreviewJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("PreviewConsumer", "Failed to unmarshal message", map[string]interface{}{"error": err})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("PreviewConsumer", "Failed to load document", map[string]interface{}{"error": err, "document_id": payload.DocumentId})
		msg.Nack()
		return
	}
	if doc == nil {
		// deleted before the job ran
		msg.Ack()
		return
	}

	preview := cs.parser.RenderDocument(bridge.ToEditor(doc.Content))
	if err := uow.DocumentRepository().UpdatePreview(ctx, doc.Id, preview); err != nil {
		cs.logger.Error("PreviewConsumer", "Failed to store preview", map[string]interface{}{"error": err, "document_id": doc.Id})
		msg.Nack()
		return
	}

	cs.logger.Info("PreviewConsumer", "Preview rendered", map[string]interface{}{"document_id": doc.Id, "length": len(preview)})
	msg.Ack()
}
