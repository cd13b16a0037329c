package service

import (
	"context"
	"fmt"

	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/repository/unitofwork"
	"docedit-be/pkg/events"
	pktNats "docedit-be/pkg/nats"
)

const exportAuditDurable = "document-export-audit"

type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, durableName string, handler pktNats.EventHandler) error
}

// ExportAuditService keeps the per-document export counters in step with the
// DOCUMENT_EXPORTED events on the bus.
type ExportAuditService struct {
	subscriber EventSubscriber
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewExportAuditService(subscriber EventSubscriber, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *ExportAuditService {
	return &ExportAuditService{
		subscriber: subscriber,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *ExportAuditService) Start(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, events.DocumentExported, exportAuditDurable, s.HandleExported)
}

// HandleExported returns an error only for failures worth redelivering.
func (s *ExportAuditService) HandleExported(ctx context.Context, event events.Event) error {
	documentId, ok := events.DocumentID(event)
	if !ok {
		s.logger.Warn("ExportAudit", "Event without valid document_id", map[string]interface{}{"payload": event.Payload()})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().MarkExported(ctx, documentId, event.Timestamp()); err != nil {
		return fmt.Errorf("mark document %s exported: %w", documentId, err)
	}
	return nil
}
