package service

import (
	"testing"

	"scorebridge/internal/models"
)

func TestJoinNameParts(t *testing.T) {
	tests := []struct {
		name     string
		part1    string
		part2    string
		expected string
	}{
		{"both parts", "Maria", "Jose", "Maria Jose"},
		{"first only", "Maria", "", "Maria"},
		{"second only", "", "Jose", "Jose"},
		{"both empty", "", "", ""},
		{"whitespace trimmed", "  Maria ", " Jose  ", "Maria Jose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinNameParts(tt.part1, tt.part2); got != tt.expected {
				t.Errorf("joinNameParts(%q, %q) = %q, want %q", tt.part1, tt.part2, got, tt.expected)
			}
		})
	}
}

func TestResolveCreatesStudent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	student, created, err := env.students.Resolve(ResolveInput{
		Document:    "300001",
		FamilyName1: "Garcia",
		FamilyName2: "Lopez",
		GivenName1:  "Maria",
		GivenName2:  "Jose",
		Track:       models.TrackExitCycle,
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !created {
		t.Error("Expected a new student to be created")
	}
	if student.GivenNames != "Maria Jose" || student.FamilyNames != "Garcia Lopez" {
		t.Errorf("Unexpected names: %q / %q", student.GivenNames, student.FamilyNames)
	}
	if student.Email != "300001@institution-temp" {
		t.Errorf("Expected placeholder email, got %q", student.Email)
	}
	if student.AcademicProgram != DefaultAcademicProgram {
		t.Errorf("Expected default program, got %q", student.AcademicProgram)
	}
	if student.Term != 10 {
		t.Errorf("Expected term 10 for exit track, got %d", student.Term)
	}

	// First-login credential is provisioned alongside
	cred, err := env.credRepo.GetByEmail(student.Email)
	if err != nil {
		t.Fatalf("Failed to load credential: %v", err)
	}
	if cred == nil {
		t.Fatal("Expected a credential to be provisioned")
	}
	if !cred.MustChangePassword {
		t.Error("Provisioned credential should require a password change")
	}
	if cred.Role != models.RoleStudent {
		t.Errorf("Expected role %q, got %q", models.RoleStudent, cred.Role)
	}
	if cred.StudentDocument != student.Document {
		t.Errorf("Credential linked to %q, want %q", cred.StudentDocument, student.Document)
	}
}

func TestResolveMergesExistingStudent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	first, _, err := env.students.Resolve(ResolveInput{
		Document:    "300002",
		FamilyName1: "Rojas",
		GivenName1:  "Andres",
		Email:       "andres@example.com",
		Phone:       "555-0001",
		Track:       models.TrackEarlyCycle,
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first.Term != 6 {
		t.Fatalf("Expected term 6 for early track, got %d", first.Term)
	}

	// Same document again: phone is overwritten, track change re-derives the term
	second, created, err := env.students.Resolve(ResolveInput{
		Document: "300002",
		Phone:    "555-0002",
		Track:    models.TrackExitCycle,
	})
	if err != nil {
		t.Fatalf("Second resolve failed: %v", err)
	}
	if created {
		t.Error("Expected existing student, got a new one")
	}
	if second.Phone != "555-0002" {
		t.Errorf("Expected merged phone 555-0002, got %q", second.Phone)
	}
	if second.Track != models.TrackExitCycle || second.Term != 10 {
		t.Errorf("Expected track change to re-derive term, got track %s term %d", second.Track, second.Term)
	}
	// The original email survives the merge
	if second.Email != "andres@example.com" {
		t.Errorf("Email should not change on merge, got %q", second.Email)
	}

	count, err := env.studentRepo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 student after merge, got %d", count)
	}
}

func TestResolveMissingPhoneKeepsOldValue(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	if _, _, err := env.students.Resolve(ResolveInput{
		Document: "300003",
		Phone:    "555-0009",
		Track:    models.TrackEarlyCycle,
	}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	student, _, err := env.students.Resolve(ResolveInput{
		Document: "300003",
		Track:    models.TrackEarlyCycle,
	})
	if err != nil {
		t.Fatalf("Second resolve failed: %v", err)
	}
	if student.Phone != "555-0009" {
		t.Errorf("Blank phone on the row should keep the stored one, got %q", student.Phone)
	}
}
