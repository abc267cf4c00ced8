package models

import (
	"fmt"
	"strings"
	"time"
)

// Track identifies which standardized-test variant a student sits.
type Track string

const (
	// TrackEarlyCycle is the early-cycle test, scored 0-200
	TrackEarlyCycle Track = "TRACK_A"
	// TrackExitCycle is the exit-cycle test, scored 0-300
	TrackExitCycle Track = "TRACK_B"
)

// ParseTrack converts a request value into a Track
func ParseTrack(s string) (Track, error) {
	switch Track(strings.ToUpper(strings.TrimSpace(s))) {
	case TrackEarlyCycle:
		return TrackEarlyCycle, nil
	case TrackExitCycle:
		return TrackExitCycle, nil
	}
	return "", fmt.Errorf("unknown track: %q", s)
}

// MaxScore returns the upper bound of the track's global score scale
func (t Track) MaxScore() int {
	if t == TrackEarlyCycle {
		return 200
	}
	return 300
}

// DefaultTerm returns the academic term implied by the track
func (t Track) DefaultTerm() int {
	if t == TrackEarlyCycle {
		return 6
	}
	return 10
}

// Student is a registry entry keyed by the institution-assigned document number
type Student struct {
	Document        string    `json:"document"`
	GivenNames      string    `json:"given_names"`
	FamilyNames     string    `json:"family_names"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	AcademicProgram string    `json:"academic_program"`
	Term            int       `json:"term"`
	Track           Track     `json:"track"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullName returns the display name, given names first
func (s *Student) FullName() string {
	return strings.TrimSpace(s.GivenNames + " " + s.FamilyNames)
}
