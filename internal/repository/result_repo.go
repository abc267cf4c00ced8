package repository

import (
	"database/sql"
	"fmt"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
)

// ResultRepository handles database operations for test results
type ResultRepository struct {
	db database.DBTX
}

// NewResultRepository creates a new result repository
func NewResultRepository(db database.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ResultRepository) WithTx(tx *database.Tx) *ResultRepository {
	return &ResultRepository{db: tx}
}

const resultColumns = "id, student_document, track, global_score, exam_year, exam_period, status, notes, registered_at, updated_at"

// Create inserts a result together with its competency sub-scores
func (r *ResultRepository) Create(result *models.TestResult) error {
	query := `
		INSERT INTO test_results (student_document, track, global_score, exam_year, exam_period, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, result.StudentDocument, result.Track,
		nullInt(result.GlobalScore), result.ExamYear, result.ExamPeriod, result.Status, nullString(result.Notes))
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	result.ID = id

	for _, c := range result.Competencies {
		_, err := r.db.Exec(
			"INSERT INTO competency_scores (result_id, name, score) VALUES (?, ?, ?)",
			id, c.Name, c.Score)
		if err != nil {
			return fmt.Errorf("failed to create competency score %q: %w", c.Name, err)
		}
	}
	return nil
}

// UpdateStatus moves a result to a new outcome status
func (r *ResultRepository) UpdateStatus(id int64, status models.ResultStatus) error {
	query := "UPDATE test_results SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update result status: %w", err)
	}
	return nil
}

// GetByID retrieves a result with its competency scores, or nil if absent
func (r *ResultRepository) GetByID(id int64) (*models.TestResult, error) {
	query := "SELECT " + resultColumns + " FROM test_results WHERE id = ?"
	result, err := scanResult(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if err := r.loadCompetencies(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByStudent retrieves all results for a student, most recent first
func (r *ResultRepository) ListByStudent(document string) ([]models.TestResult, error) {
	query := "SELECT " + resultColumns + " FROM test_results WHERE student_document = ? ORDER BY registered_at DESC, id DESC"
	return r.list(query, document)
}

// ListByStudentAndTrack retrieves a student's results for one track, most recent first
func (r *ResultRepository) ListByStudentAndTrack(document string, track models.Track) ([]models.TestResult, error) {
	query := "SELECT " + resultColumns + " FROM test_results WHERE student_document = ? AND track = ? ORDER BY registered_at DESC, id DESC"
	return r.list(query, document, track)
}

// ExistsForYear reports whether a (student, track, year) result is already recorded
func (r *ResultRepository) ExistsForYear(document string, track models.Track, year int) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM test_results WHERE student_document = ? AND track = ? AND exam_year = ?"
	if err := r.db.QueryRow(query, document, track, year).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of results
func (r *ResultRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM test_results").Scan(&count)
	return count, err
}

// CountByStatus returns the number of results with the given status
func (r *ResultRepository) CountByStatus(status models.ResultStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM test_results WHERE status = ?", status).Scan(&count)
	return count, err
}

func (r *ResultRepository) list(query string, args ...interface{}) ([]models.TestResult, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := r.loadCompetencies(&results[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (r *ResultRepository) loadCompetencies(result *models.TestResult) error {
	rows, err := r.db.Query(
		"SELECT name, score FROM competency_scores WHERE result_id = ? ORDER BY id", result.ID)
	if err != nil {
		return fmt.Errorf("failed to query competency scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CompetencyScore
		if err := rows.Scan(&c.Name, &c.Score); err != nil {
			return fmt.Errorf("failed to scan competency score: %w", err)
		}
		result.Competencies = append(result.Competencies, c)
	}
	return rows.Err()
}

func scanResult(row rowScanner) (*models.TestResult, error) {
	result := &models.TestResult{}
	var score sql.NullInt64
	var notes sql.NullString
	err := row.Scan(&result.ID, &result.StudentDocument, &result.Track, &score,
		&result.ExamYear, &result.ExamPeriod, &result.Status, &notes,
		&result.RegisteredAt, &result.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		result.GlobalScore = &v
	}
	result.Notes = notes.String
	return result, nil
}

func nullInt(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}
