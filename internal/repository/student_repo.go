package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
)

// ErrStudentHasResults is returned when deleting a student that owns test results
var ErrStudentHasResults = errors.New("student owns test results and cannot be deleted")

// StudentRepository handles database operations for students
type StudentRepository struct {
	db database.DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db database.DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *StudentRepository) WithTx(tx *database.Tx) *StudentRepository {
	return &StudentRepository{db: tx}
}

const studentColumns = "document, given_names, family_names, email, phone, academic_program, term, track, created_at, updated_at"

// GetByDocument retrieves a student by document number, or nil if absent
func (r *StudentRepository) GetByDocument(document string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE document = ?"
	return r.scanOne(r.db.QueryRow(query, document))
}

// GetByEmail retrieves a student by contact email, or nil if absent
func (r *StudentRepository) GetByEmail(email string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE email = ?"
	return r.scanOne(r.db.QueryRow(query, email))
}

// Create inserts a new student
func (r *StudentRepository) Create(s *models.Student) error {
	query := `
		INSERT INTO students (document, given_names, family_names, email, phone, academic_program, term, track)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, s.Document, s.GivenNames, s.FamilyNames, s.Email,
		nullString(s.Phone), s.AcademicProgram, s.Term, s.Track)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing student
func (r *StudentRepository) Update(s *models.Student) error {
	query := `
		UPDATE students
		SET given_names = ?, family_names = ?, email = ?, phone = ?,
		    academic_program = ?, term = ?, track = ?, updated_at = CURRENT_TIMESTAMP
		WHERE document = ?
	`
	_, err := r.db.Exec(query, s.GivenNames, s.FamilyNames, s.Email, nullString(s.Phone),
		s.AcademicProgram, s.Term, s.Track, s.Document)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

// List retrieves all students ordered by family name
func (r *StudentRepository) List() ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students ORDER BY family_names, given_names"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Count returns the number of registered students
func (r *StudentRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count)
	return count, err
}

// HasResults reports whether the student owns any test results
func (r *StudentRepository) HasResults(document string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM test_results WHERE student_document = ?"
	if err := r.db.QueryRow(query, document).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a student. Students that own results are never deleted;
// that would orphan their result history.
func (r *StudentRepository) Delete(document string) error {
	hasResults, err := r.HasResults(document)
	if err != nil {
		return err
	}
	if hasResults {
		return ErrStudentHasResults
	}
	_, err = r.db.Exec("DELETE FROM students WHERE document = ?", document)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *StudentRepository) scanOne(row *sql.Row) (*models.Student, error) {
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	var phone sql.NullString
	err := row.Scan(&s.Document, &s.GivenNames, &s.FamilyNames, &s.Email, &phone,
		&s.AcademicProgram, &s.Term, &s.Track, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Phone = phone.String
	return s, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
