package store

import (
	"time"

	"docedit-be/pkg/bridge"
	"docedit-be/pkg/checkbox"
	"docedit-be/pkg/docmodel"
	"docedit-be/pkg/editor"
	"docedit-be/pkg/ledger"

	"github.com/google/uuid"
)

// EditSession is one open editing surface over an uploaded document. The
// Original is the document as parsed and is never modified; the view holds
// the edited copy and the ledger the checkbox changes made to it.
type EditSession struct {
	ID         string    `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	OpenedAt   time.Time `json:"opened_at"`

	Original   docmodel.Document    `json:"-"`
	Controller *checkbox.Controller `json:"-"`
	Decorator  *checkbox.Decorator  `json:"-"`
	Ledger     *ledger.Ledger       `json:"-"`
}

// NewEditSession loads the original into a fresh editor and wires every
// applied toggle into the session ledger.
func NewEditSession(documentID, userID uuid.UUID, title string, original docmodel.Document, maxDistance int) *EditSession {
	modifications := ledger.New()
	view := editor.NewView(editor.NewState(bridge.ToEditor(original)))
	controller := checkbox.NewController(view,
		checkbox.WithMaxDistance(maxDistance),
		checkbox.WithToggleHandler(func(t checkbox.Toggle) {
			// resolver indices are never negative
			_ = modifications.Record(t.Index, t.NewChecked)
		}),
	)

	return &EditSession{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		UserID:     userID,
		Title:      title,
		OpenedAt:   time.Now(),
		Original:   original,
		Controller: controller,
		Decorator:  checkbox.NewDecorator(view),
		Ledger:     modifications,
	}
}

func (s *EditSession) View() *editor.View {
	return s.Controller.View()
}

// Reset puts the original back into the editor and forgets all recorded
// modifications.
func (s *EditSession) Reset() {
	s.Controller.Reset(bridge.ToEditor(s.Original))
	s.Ledger.Reset()
}

// Export replays the recorded modifications onto the original.
func (s *EditSession) Export() (docmodel.Document, docmodel.ReplayReport) {
	return docmodel.Replay(s.Original, s.Ledger.Snapshot())
}
