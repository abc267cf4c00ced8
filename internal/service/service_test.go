package service

import (
	"path/filepath"
	"testing"
	"time"

	"scorebridge/internal/database"
	"scorebridge/internal/repository"
)

// testEnv wires real repositories against a throwaway SQLite database
type testEnv struct {
	db       *database.DB
	students *StudentService
	results  *ResultService
	benefits *BenefitService
	imports  *ImportService

	studentRepo   *repository.StudentRepository
	resultRepo    *repository.ResultRepository
	benefitRepo   *repository.BenefitRepository
	credRepo      *repository.CredentialRepository
	importLogRepo *repository.ImportLogRepository
}

// testClock pins service time so year-based deduplication is deterministic
var testClock = func() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	env := &testEnv{
		db:            db,
		studentRepo:   repository.NewStudentRepository(db),
		resultRepo:    repository.NewResultRepository(db),
		benefitRepo:   repository.NewBenefitRepository(db),
		credRepo:      repository.NewCredentialRepository(db),
		importLogRepo: repository.NewImportLogRepository(db),
	}
	env.students = NewStudentService(env.studentRepo, env.credRepo)
	env.results = NewResultService(env.resultRepo)
	env.results.now = testClock
	env.benefits = NewBenefitService(env.benefitRepo, env.resultRepo, env.studentRepo)
	env.benefits.now = testClock
	env.imports = NewImportService(db, env.students, env.results, env.benefits, env.importLogRepo)
	return env
}
