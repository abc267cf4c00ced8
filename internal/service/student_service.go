package service

import (
	"fmt"
	"log"
	"strings"

	"scorebridge/internal/credentials"
	"scorebridge/internal/database"
	"scorebridge/internal/models"
	"scorebridge/internal/repository"
)

// StudentService resolves import rows against the student registry
type StudentService struct {
	students    *repository.StudentRepository
	credentials *repository.CredentialRepository
}

// NewStudentService creates a new student service
func NewStudentService(students *repository.StudentRepository, creds *repository.CredentialRepository) *StudentService {
	return &StudentService{students: students, credentials: creds}
}

// WithTx returns a copy of the service whose repositories are bound to the transaction
func (s *StudentService) WithTx(tx *database.Tx) *StudentService {
	return &StudentService{
		students:    s.students.WithTx(tx),
		credentials: s.credentials.WithTx(tx),
	}
}

// ResolveInput carries the row-derived identity and contact fields
type ResolveInput struct {
	Document    string
	FamilyName1 string
	FamilyName2 string
	GivenName1  string
	GivenName2  string
	Email       string
	Phone       string
	Track       models.Track
}

// Resolve finds the student the row belongs to, creating one if absent.
// The second return value reports whether a new student was created.
//
// On an existing student the phone is merged when the row supplies one (last
// write wins), and a track change re-derives the academic term.
func (s *StudentService) Resolve(in ResolveInput) (*models.Student, bool, error) {
	document := strings.TrimSpace(in.Document)

	student, err := s.students.GetByDocument(document)
	if err != nil {
		return nil, false, err
	}

	if student != nil {
		if phone := strings.TrimSpace(in.Phone); phone != "" {
			student.Phone = phone
		}
		if student.Track != in.Track {
			student.Track = in.Track
			student.Term = in.Track.DefaultTerm()
		}
		if err := s.students.Update(student); err != nil {
			return nil, false, err
		}
		return student, false, nil
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = PlaceholderEmail(document)
	}

	student = &models.Student{
		Document:        document,
		GivenNames:      joinNameParts(in.GivenName1, in.GivenName2),
		FamilyNames:     joinNameParts(in.FamilyName1, in.FamilyName2),
		Email:           email,
		Phone:           strings.TrimSpace(in.Phone),
		AcademicProgram: DefaultAcademicProgram,
		Term:            in.Track.DefaultTerm(),
		Track:           in.Track,
	}

	if err := s.students.Create(student); err != nil {
		return nil, false, err
	}

	if err := s.provisionCredential(student, in.FamilyName1); err != nil {
		return nil, false, fmt.Errorf("failed to provision credential for %s: %w", student.Email, err)
	}

	return student, true, nil
}

// provisionCredential creates the student's first-login credential. Creation
// is idempotent: an existing credential for the email is left untouched.
func (s *StudentService) provisionCredential(student *models.Student, firstFamilyName string) error {
	existing, err := s.credentials.GetByEmail(student.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("credential already exists for %s, skipping provisioning", student.Email)
		return nil
	}

	tempPassword := credentials.DeriveTempPassword(firstFamilyName, student.Document)
	hash, err := credentials.HashPassword(tempPassword)
	if err != nil {
		return err
	}

	return s.credentials.Create(&models.Credential{
		Email:              student.Email,
		PasswordHash:       hash,
		FullName:           student.FullName(),
		Role:               models.RoleStudent,
		Active:             true,
		MustChangePassword: true,
		StudentDocument:    student.Document,
	})
}

// joinNameParts concatenates two optional name parts with a single space
func joinNameParts(part1, part2 string) string {
	part1 = strings.TrimSpace(part1)
	part2 = strings.TrimSpace(part2)
	switch {
	case part1 == "":
		return part2
	case part2 == "":
		return part1
	default:
		return part1 + " " + part2
	}
}
