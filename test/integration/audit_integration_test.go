package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"cim-memo-be/internal/entity"
	"cim-memo-be/internal/repository/specification"
	"cim-memo-be/internal/repository/unitofwork"
	"cim-memo-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestAuditPersistence(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.GenerationLogRepository())
	assert.NotNil(t, uow.ExportLogRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	workspaceId := uuid.New()

	t.Run("Generation log round trip", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		logEntry := &entity.GenerationLog{
			Id:          uuid.New(),
			WorkspaceId: workspaceId,
			Stage:       "summary",
			Function:    "none",
			ModelOption: "gemini-2.5-pro",
			Temperature: 1.0,
			DurationMs:  4200,
			Success:     true,
			Details:     map[string]interface{}{"file_count": 2},
		}
		err = uow.GenerationLogRepository().Create(ctx, logEntry)
		assert.NoError(t, err)

		found, err := uow.GenerationLogRepository().FindAll(ctx,
			specification.ByWorkspaceID{WorkspaceID: workspaceId},
			specification.ByStage{Stage: "summary"},
		)
		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "gemini-2.5-pro", found[0].ModelOption)
		assert.Equal(t, int64(4200), found[0].DurationMs)

		err = uow.Commit()
		assert.NoError(t, err)
	})

	t.Run("Export log round trip", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		logEntry := &entity.ExportLog{
			Id:          uuid.New(),
			WorkspaceId: workspaceId,
			Artifact:    "memo",
			Format:      "docx",
			Success:     false,
			ErrorText:   "pandoc: not found",
		}
		err = uow.ExportLogRepository().Create(ctx, logEntry)
		assert.NoError(t, err)

		count, err := uow.ExportLogRepository().Count(ctx,
			specification.ByWorkspaceID{WorkspaceID: workspaceId},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		err = uow.Commit()
		assert.NoError(t, err)
	})
}
