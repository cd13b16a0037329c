package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docedit-be/internal/dto"
	"docedit-be/internal/entity"
	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/repository/specification"
	"docedit-be/internal/repository/unitofwork"
	"docedit-be/pkg/bridge"
	"docedit-be/pkg/checkbox"
	"docedit-be/pkg/docmodel"
	"docedit-be/pkg/editor"
	"docedit-be/pkg/events"
	"docedit-be/pkg/lexical"
	"docedit-be/pkg/search"
	"docedit-be/pkg/store"

	"github.com/google/uuid"
)

// Messages pushed to session watchers.
const (
	MsgCheckboxToggled = "checkbox_toggled"
	MsgDocumentEdited  = "document_edited"
	MsgSessionReset    = "session_reset"
	MsgSessionExpired  = "session_expired"
)

const (
	defaultListLimit = 20
	eventTimeout     = 2 * time.Second
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.OpenSessionResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error)
	Open(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) (*dto.OpenSessionResponse, error)
	Authorize(ctx context.Context, userId uuid.UUID, sessionId string) error
	Show(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ShowSessionResponse, error)
	Click(ctx context.Context, userId uuid.UUID, req *dto.ClickRequest) (*dto.ClickResponse, error)
	EditText(ctx context.Context, userId uuid.UUID, req *dto.EditTextRequest) (*dto.ShowSessionResponse, error)
	Reset(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ShowSessionResponse, error)
	Export(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ExportResponse, error)
	Preview(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.PreviewResponse, error)
	Close(ctx context.Context, userId uuid.UUID, sessionId string) error
}

type SessionStore interface {
	Save(session *store.EditSession)
	Get(sessionID string) (*store.EditSession, bool)
	Delete(sessionID string)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type SessionBroadcaster interface {
	SendToSession(sessionID, msgType string, data interface{})
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         SessionStore
	publisherService IPublisherService
	eventPublisher   EventPublisher
	broadcaster      SessionBroadcaster
	parser           *lexical.Parser
	logger           logger.ILogger
	maxDistance      int
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	sessions SessionStore,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	broadcaster SessionBroadcaster,
	log logger.ILogger,
	maxDistance int,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		broadcaster:      broadcaster,
		parser:           lexical.NewParser(),
		logger:           log,
		maxDistance:      maxDistance,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.OpenSessionResponse, error) {
	if err := docmodel.Validate(req.Document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc := entity.Document{
		Id:            uuid.New(),
		UserId:        userId,
		Title:         req.Title,
		Content:       req.Document,
		CheckboxCount: docmodel.StatsOf(req.Document).Total,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// The preview is auxiliary; the upload stands without it.
	job, _ := json.Marshal(dto.PreviewJobMessage{DocumentId: doc.Id})
	if err := s.publisherService.Publish(ctx, job); err != nil {
		s.logger.Warn("DocumentService", "Failed to queue preview job", map[string]interface{}{"error": err, "document_id": doc.Id})
	}

	s.publishEvent(ctx, events.DocumentUploaded, map[string]interface{}{
		"document_id":    doc.Id,
		"user_id":        userId,
		"title":          doc.Title,
		"checkbox_count": doc.CheckboxCount,
	})

	session := s.openSession(&doc)
	return &dto.OpenSessionResponse{SessionId: session.ID, DocumentId: doc.Id}, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID, req *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	query := search.ParseQuery(req.Query)
	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.TitleContains{Query: query.Title},
	}
	if query.WithCheckboxes {
		filters = append(filters, specification.WithCheckboxes{})
	}
	if query.ExportedOnly {
		filters = append(filters, specification.ExportedOnly{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.DocumentRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, err
	}

	res := &dto.ListDocumentsResponse{Documents: make([]*dto.DocumentSummary, 0, len(docs)), Total: total}
	for _, d := range docs {
		res.Documents = append(res.Documents, &dto.DocumentSummary{
			Id:             d.Id,
			Title:          d.Title,
			CheckboxCount:  d.CheckboxCount,
			ExportCount:    d.ExportCount,
			HasPreview:     d.Preview != "",
			LastExportedAt: d.LastExportedAt,
			CreatedAt:      d.CreatedAt,
			UpdatedAt:      d.UpdatedAt,
		})
	}
	return res, nil
}

// Open starts a fresh edit session on a stored original.
func (s *documentService) Open(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) (*dto.OpenSessionResponse, error) {
	doc, err := s.findOwned(ctx, userId, documentId)
	if err != nil {
		return nil, err
	}
	session := s.openSession(doc)
	return &dto.OpenSessionResponse{SessionId: session.ID, DocumentId: doc.Id}, nil
}

func (s *documentService) Authorize(ctx context.Context, userId uuid.UUID, sessionId string) error {
	_, err := s.session(userId, sessionId)
	return err
}

func (s *documentService) Show(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ShowSessionResponse, error) {
	session, err := s.session(userId, sessionId)
	if err != nil {
		return nil, err
	}
	return s.showResponse(session)
}

func (s *documentService) Click(ctx context.Context, userId uuid.UUID, req *dto.ClickRequest) (*dto.ClickResponse, error) {
	session, err := s.session(userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	var (
		toggle  checkbox.Toggle
		toggled bool
	)
	if req.MaxDistance != nil {
		toggle, toggled = session.Controller.ClickWithin(*req.Position, *req.MaxDistance)
	} else {
		toggle, toggled = session.Controller.Click(*req.Position)
	}

	res := &dto.ClickResponse{Toggled: toggled, Checkboxes: session.Decorator.Current().Markers()}
	if !toggled {
		return res, nil
	}
	res.Toggle = &toggle

	s.broadcast(session.ID, MsgCheckboxToggled, toggle)
	s.publishEvent(ctx, events.CheckboxToggled, map[string]interface{}{
		"session_id":     session.ID,
		"document_id":    session.DocumentID,
		"user_id":        session.UserID,
		"checkbox_index": toggle.Index,
		"new_checked":    toggle.NewChecked,
	})
	return res, nil
}

func (s *documentService) EditText(ctx context.Context, userId uuid.UUID, req *dto.EditTextRequest) (*dto.ShowSessionResponse, error) {
	session, err := s.session(userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	err = session.Controller.Edit(func(tr *editor.Transaction) error {
		return tr.ReplaceText(*req.From, *req.To, req.Text)
	})
	if err != nil {
		if errors.Is(err, editor.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
		}
		return nil, err
	}

	s.broadcast(session.ID, MsgDocumentEdited, map[string]interface{}{"from": *req.From, "to": *req.To, "text": req.Text})
	return s.showResponse(session)
}

func (s *documentService) Reset(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ShowSessionResponse, error) {
	session, err := s.session(userId, sessionId)
	if err != nil {
		return nil, err
	}

	session.Reset()

	s.broadcast(session.ID, MsgSessionReset, nil)
	s.publishEvent(ctx, events.SessionReset, map[string]interface{}{
		"session_id":  session.ID,
		"document_id": session.DocumentID,
		"user_id":     session.UserID,
	})
	return s.showResponse(session)
}

// Export replays the session ledger onto the stored original. Ordinals that
// no longer exist in the original are reported, not fatal.
func (s *documentService) Export(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ExportResponse, error) {
	session, err := s.session(userId, sessionId)
	if err != nil {
		return nil, err
	}

	out, report := session.Export()
	if len(report.Missing) > 0 {
		s.logger.Warn("DocumentService", "Modifications without a matching checkbox", map[string]interface{}{
			"session_id": session.ID,
			"missing":    report.Missing,
		})
	}

	s.publishEvent(ctx, events.DocumentExported, map[string]interface{}{
		"session_id":  session.ID,
		"document_id": session.DocumentID.String(),
		"user_id":     session.UserID,
		"applied":     len(report.Applied),
		"missing":     len(report.Missing),
	})

	return &dto.ExportResponse{
		Document: out,
		Report:   report,
		Stats:    toStatsDto(docmodel.StatsOf(out)),
		Markdown: s.parser.RenderDocument(bridge.ToEditor(out)),
	}, nil
}

// Preview returns the stored preview of the original, rendered in the
// background after upload, next to a live rendering of the edited state.
func (s *documentService) Preview(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.PreviewResponse, error) {
	session, err := s.session(userId, sessionId)
	if err != nil {
		return nil, err
	}
	doc, err := s.findOwned(ctx, userId, session.DocumentID)
	if err != nil {
		return nil, err
	}

	return &dto.PreviewResponse{
		Ready:    doc.Preview != "",
		Original: doc.Preview,
		Current:  s.parser.RenderDocument(session.View().State().Doc),
	}, nil
}

func (s *documentService) Close(ctx context.Context, userId uuid.UUID, sessionId string) error {
	session, err := s.session(userId, sessionId)
	if err != nil {
		return err
	}
	s.sessions.Delete(session.ID)
	return nil
}

func (s *documentService) openSession(doc *entity.Document) *store.EditSession {
	session := store.NewEditSession(doc.Id, doc.UserId, doc.Title, doc.Content, s.maxDistance)
	s.sessions.Save(session)
	s.logger.Info("DocumentService", "Edit session opened", map[string]interface{}{
		"session_id":  session.ID,
		"document_id": doc.Id,
		"checkboxes":  session.Decorator.Current().Len(),
	})
	return session
}

// session hides sessions of other users behind the same not-found error.
func (s *documentService) session(userId uuid.UUID, sessionId string) (*store.EditSession, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok || session.UserID != userId {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *documentService) findOwned(ctx context.Context, userId, documentId uuid.UUID) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *documentService) showResponse(session *store.EditSession) (*dto.ShowSessionResponse, error) {
	state := session.View().State()

	editorState, err := lexical.Marshal(state.Doc)
	if err != nil {
		return nil, err
	}

	return &dto.ShowSessionResponse{
		SessionId:     session.ID,
		DocumentId:    session.DocumentID,
		Title:         session.Title,
		EditorState:   json.RawMessage(editorState),
		Text:          editor.TextContent(state.Doc),
		Checkboxes:    checkbox.Decorate(state.Doc).Markers(),
		Modifications: session.Ledger.Entries(),
		Stats:         toStatsDto(docmodel.StatsOf(bridge.FromEditor(state.Doc))),
		HistoryDepth:  session.View().HistoryDepth(),
	}, nil
}

func (s *documentService) broadcast(sessionId, msgType string, data interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.SendToSession(sessionId, msgType, data)
	}
}

// publishEvent is best effort: a missing or slow bus never fails a request.
func (s *documentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, eventTimeout)
	defer cancel()

	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish event", map[string]interface{}{"error": err, "type": eventType})
	}
}

func toStatsDto(stats docmodel.Stats) dto.CheckboxStats {
	return dto.CheckboxStats{
		Total:     stats.Total,
		Checked:   stats.Checked,
		Unchecked: stats.Unchecked,
		Progress:  stats.Progress,
	}
}
