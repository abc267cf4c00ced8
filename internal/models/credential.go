package models

import "time"

// Credential is a login record provisioned when a student first appears.
// Authentication itself lives outside this service; only provisioning is
// handled here.
type Credential struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FullName           string    `json:"full_name"`
	Role               string    `json:"role"`
	Active             bool      `json:"active"`
	MustChangePassword bool      `json:"must_change_password"`
	StudentDocument    string    `json:"student_document,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// RoleStudent is the role assigned to provisioned student credentials
const RoleStudent = "STUDENT"
