package dto

import (
	"encoding/json"
	"time"

	"docedit-be/pkg/checkbox"
	"docedit-be/pkg/docmodel"
	"docedit-be/pkg/ledger"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	Title    string            `json:"title" validate:"required,max=255"`
	Document docmodel.Document `json:"document"`
}

type OpenSessionResponse struct {
	SessionId  string    `json:"session_id"`
	DocumentId uuid.UUID `json:"document_id"`
}

type ListDocumentsRequest struct {
	Query  string `query:"q"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type DocumentSummary struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	CheckboxCount  int        `json:"checkbox_count"`
	ExportCount    int        `json:"export_count"`
	HasPreview     bool       `json:"has_preview"`
	LastExportedAt *time.Time `json:"last_exported_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []*DocumentSummary `json:"documents"`
	Total     int64              `json:"total"`
}

type CheckboxStats struct {
	Total     int     `json:"total"`
	Checked   int     `json:"checked"`
	Unchecked int     `json:"unchecked"`
	Progress  float64 `json:"progress"`
}

type ShowSessionResponse struct {
	SessionId     string            `json:"session_id"`
	DocumentId    uuid.UUID         `json:"document_id"`
	Title         string            `json:"title"`
	EditorState   json.RawMessage   `json:"editor_state"`
	Text          string            `json:"text"`
	Checkboxes    []checkbox.Marker `json:"checkboxes"`
	Modifications []ledger.Entry    `json:"modifications"`
	Stats         CheckboxStats     `json:"stats"`
	HistoryDepth  int               `json:"history_depth"`
}

type ClickRequest struct {
	SessionId   string
	Position    *int `json:"position" validate:"required"`
	MaxDistance *int `json:"max_distance"`
}

type ClickResponse struct {
	Toggled    bool              `json:"toggled"`
	Toggle     *checkbox.Toggle  `json:"toggle,omitempty"`
	Checkboxes []checkbox.Marker `json:"checkboxes"`
}

type EditTextRequest struct {
	SessionId string
	From      *int   `json:"from" validate:"required,min=0"`
	To        *int   `json:"to" validate:"required,min=0"`
	Text      string `json:"text"`
}

type ExportResponse struct {
	Document docmodel.Document     `json:"document"`
	Report   docmodel.ReplayReport `json:"report"`
	Stats    CheckboxStats         `json:"stats"`
	Markdown string                `json:"markdown"`
}

type PreviewResponse struct {
	Ready    bool   `json:"ready"`
	Original string `json:"original"`
	Current  string `json:"current"`
}

// PreviewJobMessage is queued on upload for the preview renderer.
type PreviewJobMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
