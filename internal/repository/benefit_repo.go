package repository

import (
	"database/sql"
	"fmt"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
)

// BenefitRepository handles database operations for benefits
type BenefitRepository struct {
	db database.DBTX
}

// NewBenefitRepository creates a new benefit repository
func NewBenefitRepository(db database.DBTX) *BenefitRepository {
	return &BenefitRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *BenefitRepository) WithTx(tx *database.Tx) *BenefitRepository {
	return &BenefitRepository{db: tx}
}

const benefitColumns = "id, student_document, kind, grade, discount_percent, assigned_on, active"

// Create inserts a benefit. While the benefit is active the unique
// active_student_key column holds the student document, so inserting a second
// active benefit for the same student fails on the constraint.
func (r *BenefitRepository) Create(b *models.Benefit) error {
	var activeKey interface{}
	if b.Active {
		activeKey = b.StudentDocument
	}
	query := `
		INSERT INTO benefits (student_document, kind, grade, discount_percent, assigned_on, active, active_student_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, b.StudentDocument, b.Kind, b.Grade,
		b.DiscountPercent, b.AssignedOn, b.Active, activeKey)
	if err != nil {
		return fmt.Errorf("failed to create benefit: %w", err)
	}
	b.ID = id
	return nil
}

// GetByID retrieves a benefit, or nil if absent
func (r *BenefitRepository) GetByID(id int64) (*models.Benefit, error) {
	query := "SELECT " + benefitColumns + " FROM benefits WHERE id = ?"
	b, err := scanBenefit(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get benefit: %w", err)
	}
	return b, nil
}

// ListByStudent retrieves all benefits for a student, newest first
func (r *BenefitRepository) ListByStudent(document string) ([]models.Benefit, error) {
	query := "SELECT " + benefitColumns + " FROM benefits WHERE student_document = ? ORDER BY assigned_on DESC, id DESC"
	rows, err := r.db.Query(query, document)
	if err != nil {
		return nil, fmt.Errorf("failed to query benefits: %w", err)
	}
	defer rows.Close()

	var benefits []models.Benefit
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benefit: %w", err)
		}
		benefits = append(benefits, *b)
	}
	return benefits, rows.Err()
}

// HasActive reports whether the student currently holds an active benefit
func (r *BenefitRepository) HasActive(document string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM benefits WHERE student_document = ? AND active = ?"
	if err := r.db.QueryRow(query, document, true).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetActive activates or deactivates a benefit by administrative action
func (r *BenefitRepository) SetActive(id int64, active bool) error {
	b, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("benefit %d not found", id)
	}

	var activeKey interface{}
	if active {
		activeKey = b.StudentDocument
	}
	query := "UPDATE benefits SET active = ?, active_student_key = ? WHERE id = ?"
	if _, err := r.db.Exec(query, active, activeKey, id); err != nil {
		return fmt.Errorf("failed to set benefit active=%v: %w", active, err)
	}
	return nil
}

// Count returns the total number of benefits
func (r *BenefitRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM benefits").Scan(&count)
	return count, err
}

// CountActive returns the number of active benefits
func (r *BenefitRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM benefits WHERE active = ?", true).Scan(&count)
	return count, err
}

func scanBenefit(row rowScanner) (*models.Benefit, error) {
	b := &models.Benefit{}
	err := row.Scan(&b.ID, &b.StudentDocument, &b.Kind, &b.Grade,
		&b.DiscountPercent, &b.AssignedOn, &b.Active)
	if err != nil {
		return nil, err
	}
	return b, nil
}
