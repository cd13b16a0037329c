package service

import (
	"context"
	"sync"
	"time"

	"docedit-be/internal/entity"
	"docedit-be/internal/repository/contract"
	"docedit-be/internal/repository/specification"
	"docedit-be/internal/repository/unitofwork"
	"docedit-be/pkg/events"

	"github.com/google/uuid"
)

type fakeDocumentRepository struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*entity.Document
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{documents: make(map[uuid.UUID]*entity.Document)}
}

func (r *fakeDocumentRepository) matches(d *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if d.UserId != s.UserID {
				return false
			}
		case specification.WithCheckboxes:
			if d.CheckboxCount == 0 {
				return false
			}
		case specification.ExportedOnly:
			if d.ExportCount == 0 {
				return false
			}
		}
	}
	return true
}

func (r *fakeDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *document
	r.documents[document.Id] = &cp
	return nil
}

func (r *fakeDocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	return r.Create(ctx, document)
}

func (r *fakeDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.documents, id)
	return nil
}

func (r *fakeDocumentRepository) UpdatePreview(ctx context.Context, id uuid.UUID, preview string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.documents[id]; ok {
		d.Preview = preview
	}
	return nil
}

func (r *fakeDocumentRepository) MarkExported(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.documents[id]; ok {
		d.ExportCount++
		d.LastExportedAt = &at
	}
	return nil
}

func (r *fakeDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.documents {
		if r.matches(d, specs) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.documents {
		if r.matches(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.FindAll(ctx, specs...)
	return int64(len(docs)), nil
}

func (r *fakeDocumentRepository) get(id uuid.UUID) *entity.Document {
	d, _ := r.FindOne(context.Background(), specification.ByID{ID: id})
	return d
}

type fakeUnitOfWork struct {
	repo *fakeDocumentRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.repo
}

type fakeRepositoryFactory struct {
	repo *fakeDocumentRepository
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}

type fakePublisherService struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisherService) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakeEventPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type sentMessage struct {
	SessionID string
	Type      string
	Data      interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (b *fakeBroadcaster) SendToSession(sessionID, msgType string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{SessionID: sessionID, Type: msgType, Data: data})
}
