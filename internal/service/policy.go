package service

import (
	"fmt"

	"scorebridge/internal/models"
)

// The bulk importer and the manual registration path classify results with
// different passing rules. Both rules are institutional policy; they are kept
// side by side here so the divergence stays visible instead of being unified
// by accident.
const (
	// BulkPassingScore is the flat threshold applied to every bulk-imported result
	BulkPassingScore = 150

	// MaxAttempts caps non-voided sittings per student and track on the manual path
	MaxAttempts = 2
)

// MinPassingScore returns the manual-path passing threshold for a track
func MinPassingScore(track models.Track) int {
	if track == models.TrackEarlyCycle {
		return 80
	}
	return 121
}

// DefaultAcademicProgram is assigned to students created from an import row
const DefaultAcademicProgram = "Software Engineering"

// PlaceholderEmail builds the stand-in contact address used when an import
// row has no email. It is deterministic so re-imports resolve to the same
// student record.
func PlaceholderEmail(document string) string {
	return fmt.Sprintf("%s@institution-temp", document)
}
