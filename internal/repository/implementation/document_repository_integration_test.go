package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"docedit-be/internal/entity"
	"docedit-be/internal/model"
	"docedit-be/internal/repository/specification"
	"docedit-be/pkg/database"
	"docedit-be/pkg/docmodel"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres; skipped unless DB_CONNECTION_STRING is set.
func TestDocumentRepositoryIntegration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Document{}))

	ctx := context.Background()
	repo := NewDocumentRepository(db)
	userId := uuid.New()

	doc := &entity.Document{
		Id:     uuid.New(),
		UserId: userId,
		Title:  "Integration checklist",
		Content: docmodel.Document{Paragraphs: []docmodel.Paragraph{
			{Runs: []docmodel.Run{{Text: "☐ one ☑ two"}}},
		}},
		CheckboxCount: 2,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.Create(ctx, doc))
	t.Cleanup(func() {
		db.Unscoped().Delete(&model.Document{}, doc.Id)
	})

	t.Run("find owned", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.ByID{ID: doc.Id}, specification.UserOwnedBy{UserID: userId})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, doc.Content, found.Content)

		other, err := repo.FindOne(ctx, specification.ByID{ID: doc.Id}, specification.UserOwnedBy{UserID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("preview and export bookkeeping", func(t *testing.T) {
		require.NoError(t, repo.UpdatePreview(ctx, doc.Id, "☐ one ☑ two\n"))
		require.NoError(t, repo.MarkExported(ctx, doc.Id, time.Now()))
		require.NoError(t, repo.MarkExported(ctx, doc.Id, time.Now()))

		found, err := repo.FindOne(ctx, specification.ByID{ID: doc.Id})
		require.NoError(t, err)
		assert.Equal(t, "☐ one ☑ two\n", found.Preview)
		assert.Equal(t, 2, found.ExportCount)
		assert.NotNil(t, found.LastExportedAt)
	})

	t.Run("list and count", func(t *testing.T) {
		docs, err := repo.FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.TitleContains{Query: "CHECKLIST"},
			specification.WithCheckboxes{},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: 10},
		)
		require.NoError(t, err)
		assert.Len(t, docs, 1)

		count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: userId})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
