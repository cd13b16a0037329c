package service

import (
	"context"
	"encoding/json"
	"testing"

	"docedit-be/internal/dto"
	"docedit-be/internal/pkg/logger"
	"docedit-be/internal/repository/memory"
	"docedit-be/pkg/checkbox"
	"docedit-be/pkg/docmodel"
	"docedit-be/pkg/events"
	"docedit-be/pkg/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc         IDocumentService
	repo        *fakeDocumentRepository
	jobs        *fakePublisherService
	bus         *fakeEventPublisher
	broadcaster *fakeBroadcaster
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		repo:        newFakeDocumentRepository(),
		jobs:        &fakePublisherService{},
		bus:         &fakeEventPublisher{},
		broadcaster: &fakeBroadcaster{},
	}
	f.svc = NewDocumentService(
		&fakeRepositoryFactory{repo: f.repo},
		memory.NewSessionRepository(0),
		f.jobs,
		f.bus,
		f.broadcaster,
		logger.NewNopLogger(),
		checkbox.DefaultMaxDistance,
	)
	return f
}

// One paragraph: "Item A ☐ Item B ☐ Item C ☐", glyphs at 8, 17 and 26.
func checklist() docmodel.Document {
	return docmodel.Document{Paragraphs: []docmodel.Paragraph{
		{Runs: []docmodel.Run{{Text: "Item A ☐ Item B ☐ Item C ☐"}}},
	}}
}

func intPtr(v int) *int {
	return &v
}

func upload(t *testing.T, f *serviceFixture, userId uuid.UUID) *dto.OpenSessionResponse {
	t.Helper()
	res, err := f.svc.Upload(context.Background(), userId, &dto.UploadDocumentRequest{Title: "Checklist", Document: checklist()})
	require.NoError(t, err)
	return res
}

func TestUploadStoresOriginalAndOpensSession(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)

	stored := f.repo.get(res.DocumentId)
	require.NotNil(t, stored)
	assert.Equal(t, checklist(), stored.Content)
	assert.Equal(t, 3, stored.CheckboxCount)

	require.Len(t, f.jobs.payloads, 1)
	var job dto.PreviewJobMessage
	require.NoError(t, json.Unmarshal(f.jobs.payloads[0], &job))
	assert.Equal(t, res.DocumentId, job.DocumentId)
	assert.Equal(t, []string{events.DocumentUploaded}, f.bus.types())

	show, err := f.svc.Show(context.Background(), userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "Item A ☐ Item B ☐ Item C ☐", show.Text)
	require.Len(t, show.Checkboxes, 3)
	assert.Equal(t, []int{8, 17, 26}, []int{show.Checkboxes[0].Position, show.Checkboxes[1].Position, show.Checkboxes[2].Position})
	assert.Equal(t, dto.CheckboxStats{Total: 3, Unchecked: 3}, show.Stats)
	assert.Empty(t, show.Modifications)
	assert.True(t, json.Valid(show.EditorState))
}

func TestUploadRejectsEmptyDocument(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Upload(context.Background(), uuid.New(), &dto.UploadDocumentRequest{Title: "Empty"})
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Empty(t, f.jobs.payloads)
}

func TestClickTogglesRecordsAndNotifies(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)

	click, err := f.svc.Click(context.Background(), userId, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(18)})
	require.NoError(t, err)
	require.True(t, click.Toggled)
	assert.Equal(t, checkbox.Toggle{Index: 1, Position: 17, NewChecked: true}, *click.Toggle)
	assert.True(t, click.Checkboxes[1].Checked)

	require.Len(t, f.broadcaster.sent, 1)
	assert.Equal(t, sentMessage{SessionID: res.SessionId, Type: MsgCheckboxToggled, Data: *click.Toggle}, f.broadcaster.sent[0])
	assert.Equal(t, []string{events.DocumentUploaded, events.CheckboxToggled}, f.bus.types())

	show, err := f.svc.Show(context.Background(), userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Entry{{CheckboxIndex: 1, NewChecked: true}}, show.Modifications)
	assert.Equal(t, "Item A ☐ Item B ☑ Item C ☐", show.Text)
}

func TestClickOutsideToleranceIsNoOp(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)

	// "Item A" starts at 1, seven positions before the first glyph
	click, err := f.svc.Click(context.Background(), userId, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(1)})
	require.NoError(t, err)
	assert.False(t, click.Toggled)
	assert.Nil(t, click.Toggle)
	assert.Empty(t, f.broadcaster.sent)

	// a wider tolerance reaches it
	click, err = f.svc.Click(context.Background(), userId, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(1), MaxDistance: intPtr(7)})
	require.NoError(t, err)
	assert.True(t, click.Toggled)
	assert.Equal(t, 0, click.Toggle.Index)
}

func TestSessionsAreScopedToTheirOwner(t *testing.T) {
	f := newFixture()
	res := upload(t, f, uuid.New())
	stranger := uuid.New()

	_, err := f.svc.Show(context.Background(), stranger, res.SessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Click(context.Background(), stranger, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(8)})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.Authorize(context.Background(), stranger, res.SessionId), ErrSessionNotFound)
	_, err = f.svc.Open(context.Background(), stranger, res.DocumentId)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestEditTextKeepsOrdinalsAndExportMatches(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)
	ctx := context.Background()

	// rename "Item B" (positions 10..15)
	show, err := f.svc.EditText(ctx, userId, &dto.EditTextRequest{SessionId: res.SessionId, From: intPtr(10), To: intPtr(16), Text: "Second item"})
	require.NoError(t, err)
	assert.Equal(t, "Item A ☐ Second item ☐ Item C ☐", show.Text)
	assert.Equal(t, 1, show.HistoryDepth)

	// the second glyph moved from 17 to 22
	click, err := f.svc.Click(ctx, userId, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(22)})
	require.NoError(t, err)
	require.True(t, click.Toggled)
	assert.Equal(t, 1, click.Toggle.Index)

	export, err := f.svc.Export(ctx, userId, res.SessionId)
	require.NoError(t, err)
	// text edits are not exported, only checkbox states
	assert.Equal(t, "Item A ☐ Item B ☑ Item C ☐", export.Document.Paragraphs[0].Runs[0].Text)
	assert.Equal(t, []int{1}, export.Report.Applied)
	assert.Equal(t, 1, export.Stats.Checked)
	assert.InDelta(t, 33.33, export.Stats.Progress, 0.01)
	assert.Equal(t, "Item A ☐ Item B ☑ Item C ☐\n", export.Markdown)
	assert.Contains(t, f.bus.types(), events.DocumentExported)

	// the original is still pristine
	assert.Equal(t, checklist(), f.repo.get(res.DocumentId).Content)
}

func TestEditTextRejectsCrossNodeRange(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)

	_, err := f.svc.EditText(context.Background(), userId, &dto.EditTextRequest{SessionId: res.SessionId, From: intPtr(0), To: intPtr(40)})
	assert.ErrorIs(t, err, ErrInvalidEdit)
}

func TestToggleTwiceExportsOriginalState(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		click, err := f.svc.Click(ctx, userId, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(8)})
		require.NoError(t, err)
		require.True(t, click.Toggled)
	}

	export, err := f.svc.Export(ctx, userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, export.Report.Unchanged)
	assert.Empty(t, export.Report.Applied)
	assert.Equal(t, checklist(), export.Document)
}

func TestResetRestoresOriginalAndClearsLedger(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)
	ctx := context.Background()

	_, err := f.svc.Click(ctx, userId, &dto.ClickRequest{SessionId: res.SessionId, Position: intPtr(26)})
	require.NoError(t, err)

	show, err := f.svc.Reset(ctx, userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "Item A ☐ Item B ☐ Item C ☐", show.Text)
	assert.Empty(t, show.Modifications)
	assert.Equal(t, MsgSessionReset, f.broadcaster.sent[len(f.broadcaster.sent)-1].Type)

	export, err := f.svc.Export(ctx, userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, checklist(), export.Document)
}

func TestPreviewAndClose(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	res := upload(t, f, userId)
	ctx := context.Background()

	preview, err := f.svc.Preview(ctx, userId, res.SessionId)
	require.NoError(t, err)
	assert.False(t, preview.Ready)
	assert.Equal(t, "Item A ☐ Item B ☐ Item C ☐\n", preview.Current)

	require.NoError(t, f.repo.UpdatePreview(ctx, res.DocumentId, "rendered\n"))
	preview, err = f.svc.Preview(ctx, userId, res.SessionId)
	require.NoError(t, err)
	assert.True(t, preview.Ready)
	assert.Equal(t, "rendered\n", preview.Original)

	require.NoError(t, f.svc.Close(ctx, userId, res.SessionId))
	_, err = f.svc.Show(ctx, userId, res.SessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	reopened, err := f.svc.Open(ctx, userId, res.DocumentId)
	require.NoError(t, err)
	assert.NotEqual(t, res.SessionId, reopened.SessionId)
}

func TestList(t *testing.T) {
	f := newFixture()
	userId := uuid.New()
	upload(t, f, userId)
	upload(t, f, userId)
	upload(t, f, uuid.New())

	list, err := f.svc.List(context.Background(), userId, &dto.ListDocumentsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	assert.Len(t, list.Documents, 2)
	assert.Equal(t, 3, list.Documents[0].CheckboxCount)

	_, err = f.svc.Upload(context.Background(), userId, &dto.UploadDocumentRequest{
		Title:    "Plain",
		Document: docmodel.Document{Paragraphs: []docmodel.Paragraph{{Runs: []docmodel.Run{{Text: "no boxes"}}}}},
	})
	require.NoError(t, err)

	list, err = f.svc.List(context.Background(), userId, &dto.ListDocumentsRequest{Query: "/boxes"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)

	list, err = f.svc.List(context.Background(), userId, &dto.ListDocumentsRequest{Query: "/exported"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, list.Total)
}
