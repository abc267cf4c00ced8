package repository

import (
	"database/sql"
	"fmt"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
)

// CredentialRepository handles database operations for provisioned credentials
type CredentialRepository struct {
	db database.DBTX
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db database.DBTX) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *CredentialRepository) WithTx(tx *database.Tx) *CredentialRepository {
	return &CredentialRepository{db: tx}
}

// GetByEmail retrieves a credential by email, or nil if absent
func (r *CredentialRepository) GetByEmail(email string) (*models.Credential, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, active, must_change_password, student_document, created_at
		FROM credentials WHERE email = ?
	`
	c := &models.Credential{}
	var studentDocument sql.NullString
	err := r.db.QueryRow(query, email).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FullName,
		&c.Role, &c.Active, &c.MustChangePassword, &studentDocument, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	c.StudentDocument = studentDocument.String
	return c, nil
}

// Create inserts a new credential
func (r *CredentialRepository) Create(c *models.Credential) error {
	query := `
		INSERT INTO credentials (email, password_hash, full_name, role, active, must_change_password, student_document)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, c.Email, c.PasswordHash, c.FullName,
		c.Role, c.Active, c.MustChangePassword, nullString(c.StudentDocument))
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	c.ID = id
	return nil
}
