package unit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/templates/domain"
	"github.com/contractdesk/go-contract-backend/internal/templates/repository"
)

func setupVersionRepo(t *testing.T) (*repository.VersionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewVersionRepository(db)
	return repo, mock, db
}

func TestVersionRepository_Record(t *testing.T) {
	repo, mock, db := setupVersionRepo(t)
	defer db.Close()

	t.Run("records snapshot successfully", func(t *testing.T) {
		doc := graph.NewDocument("tpl-123")

		mock.ExpectQuery(`INSERT INTO template_versions`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"tpl-123",
				3,
				sqlmock.AnyArg(), // document JSONB
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).
				AddRow(time.Now()))

		v, err := repo.Record(context.Background(), "tpl-123", 3, doc)
		require.NoError(t, err)
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, "tpl-123", v.TemplateID)
		assert.Equal(t, 3, v.Version)
		assert.False(t, v.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVersionRepository_ListByTemplate(t *testing.T) {
	repo, mock, db := setupVersionRepo(t)
	defer db.Close()

	t.Run("lists snapshots newest first", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, template_id, version, created_at`).
			WithArgs("tpl-123").
			WillReturnRows(sqlmock.NewRows([]string{"id", "template_id", "version", "created_at"}).
				AddRow("v-2", "tpl-123", 2, time.Now()).
				AddRow("v-1", "tpl-123", 1, time.Now()))

		versions, err := repo.ListByTemplate(context.Background(), "tpl-123")
		require.NoError(t, err)
		require.Len(t, versions, 2)
		assert.Equal(t, 2, versions[0].Version)
		assert.Equal(t, 1, versions[1].Version)
		assert.Nil(t, versions[0].Document)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty list for unknown template", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, template_id, version, created_at`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "template_id", "version", "created_at"}))

		versions, err := repo.ListByTemplate(context.Background(), "nope")
		require.NoError(t, err)
		assert.Empty(t, versions)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVersionRepository_GetSnapshot(t *testing.T) {
	repo, mock, db := setupVersionRepo(t)
	defer db.Close()

	t.Run("loads historical document", func(t *testing.T) {
		docJSON := `{"templateId":"tpl-123","nodes":[],"edges":[]}`

		mock.ExpectQuery(`SELECT id, template_id, version, document, created_at`).
			WithArgs("tpl-123", 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "template_id", "version", "document", "created_at"}).
				AddRow("v-2", "tpl-123", 2, []byte(docJSON), time.Now()))

		v, err := repo.GetSnapshot(context.Background(), "tpl-123", 2)
		require.NoError(t, err)
		require.NotNil(t, v.Document)
		assert.Equal(t, "tpl-123", v.Document.TemplateID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing version", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, template_id, version, document, created_at`).
			WithArgs("tpl-123", 99).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetSnapshot(context.Background(), "tpl-123", 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
