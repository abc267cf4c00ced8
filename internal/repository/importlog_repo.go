package repository

import (
	"database/sql"
	"fmt"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
)

// ImportLogRepository handles database operations for import logs
type ImportLogRepository struct {
	db database.DBTX
}

// NewImportLogRepository creates a new import log repository
func NewImportLogRepository(db database.DBTX) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

const importLogColumns = "id, reference, filename, kind, track, status, total_rows, succeeded_rows, failed_rows, note, started_at"

// Create persists an import log together with its row errors
func (r *ImportLogRepository) Create(log *models.ImportLog) error {
	query := `
		INSERT INTO import_logs (reference, filename, kind, track, status, total_rows, succeeded_rows, failed_rows, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, log.Reference, log.Filename, log.Kind, log.Track,
		log.Status, log.TotalRows, log.SucceededRows, log.FailedRows, nullString(log.Note))
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	log.ID = id

	return r.insertRowErrors(id, log.Errors)
}

// Update persists the final state of a run: status, counters, note and the
// row errors collected while processing. Called once when the run finishes.
func (r *ImportLogRepository) Update(log *models.ImportLog) error {
	query := `
		UPDATE import_logs
		SET status = ?, total_rows = ?, succeeded_rows = ?, failed_rows = ?, note = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, log.Status, log.TotalRows, log.SucceededRows,
		log.FailedRows, nullString(log.Note), log.ID)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return r.insertRowErrors(log.ID, log.Errors)
}

func (r *ImportLogRepository) insertRowErrors(id int64, rowErrors []models.RowError) error {
	for _, rowErr := range rowErrors {
		_, err := r.db.Exec(
			"INSERT INTO import_row_errors (import_id, row_num, message) VALUES (?, ?, ?)",
			id, rowErr.Row, rowErr.Message)
		if err != nil {
			return fmt.Errorf("failed to record import row error: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an import log with its row errors, or nil if absent
func (r *ImportLogRepository) GetByID(id int64) (*models.ImportLog, error) {
	query := "SELECT " + importLogColumns + " FROM import_logs WHERE id = ?"
	log, err := scanImportLog(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import log: %w", err)
	}

	rows, err := r.db.Query(
		"SELECT row_num, message FROM import_row_errors WHERE import_id = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query import row errors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rowErr models.RowError
		if err := rows.Scan(&rowErr.Row, &rowErr.Message); err != nil {
			return nil, fmt.Errorf("failed to scan import row error: %w", err)
		}
		log.Errors = append(log.Errors, rowErr)
	}
	return log, rows.Err()
}

// List retrieves all import logs, most recent first, without row errors
func (r *ImportLogRepository) List() ([]models.ImportLog, error) {
	query := "SELECT " + importLogColumns + " FROM import_logs ORDER BY started_at DESC, id DESC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ImportLog
	for rows.Next() {
		log, err := scanImportLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func scanImportLog(row rowScanner) (*models.ImportLog, error) {
	log := &models.ImportLog{}
	var note sql.NullString
	err := row.Scan(&log.ID, &log.Reference, &log.Filename, &log.Kind, &log.Track,
		&log.Status, &log.TotalRows, &log.SucceededRows, &log.FailedRows, &note, &log.StartedAt)
	if err != nil {
		return nil, err
	}
	log.Note = note.String
	return log, nil
}
