package service

import (
	"errors"
	"fmt"
	"time"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
	"scorebridge/internal/repository"
	"scorebridge/internal/spreadsheet"
)

var (
	// ErrAlreadyApproved means the student already passed this track
	ErrAlreadyApproved = errors.New("student already has an approved result for this track")
	// ErrAttemptsExhausted means the student used up the allowed sittings
	ErrAttemptsExhausted = errors.New("student has exhausted the allowed attempts for this track")
)

// ResultService records test results from imports and manual registration
type ResultService struct {
	results *repository.ResultRepository
	now     func() time.Time
}

// NewResultService creates a new result service
func NewResultService(results *repository.ResultRepository) *ResultService {
	return &ResultService{results: results, now: time.Now}
}

// WithTx returns a copy of the service whose repository is bound to the transaction
func (s *ResultService) WithTx(tx *database.Tx) *ResultService {
	return &ResultService{results: s.results.WithTx(tx), now: s.now}
}

// RecordImported persists one bulk-imported result. If the student already
// has a result for this track in the current calendar year, nothing is
// written and the second return value is false.
//
// Classification uses the flat BulkPassingScore threshold.
func (s *ResultService) RecordImported(student *models.Student, track models.Track, score int, row []string) (*models.TestResult, bool, error) {
	year := s.now().Year()

	exists, err := s.results.ExistsForYear(student.Document, track, year)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	result := &models.TestResult{
		StudentDocument: student.Document,
		Track:           track,
		GlobalScore:     &score,
		ExamYear:        year,
		ExamPeriod:      1,
		Status:          models.StatusRejected,
	}
	if score >= BulkPassingScore {
		result.Status = models.StatusApproved
	}

	// Sub-scores whose source column does not parse are simply absent
	for i, name := range spreadsheet.CompetencyNames {
		if value := spreadsheet.NumericCell(row, spreadsheet.CompetencyColumns[i]); value != nil {
			result.AddCompetency(name, *value)
		}
	}

	if err := s.results.Create(result); err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Register records a single result through the manual path. Unlike the bulk
// importer it enforces the attempt budget and classifies against the
// per-track minimum score.
func (s *ResultService) Register(student *models.Student, track models.Track, score *int, examPeriod int, notes string) (*models.TestResult, error) {
	previous, err := s.results.ListByStudentAndTrack(student.Document, track)
	if err != nil {
		return nil, err
	}

	attempts := 0
	for _, r := range previous {
		if r.Status == models.StatusApproved {
			return nil, ErrAlreadyApproved
		}
		if r.Status != models.StatusVoided {
			attempts++
		}
	}
	if attempts >= MaxAttempts {
		return nil, ErrAttemptsExhausted
	}

	if examPeriod == 0 {
		examPeriod = 1
	}

	result := &models.TestResult{
		StudentDocument: student.Document,
		Track:           track,
		GlobalScore:     score,
		ExamYear:        s.now().Year(),
		ExamPeriod:      examPeriod,
		Status:          classifyManual(track, score),
		Notes:           notes,
	}
	if result.Status == models.StatusRejected {
		note := fmt.Sprintf("score %d below minimum %d; retake required", *score, MinPassingScore(track))
		if result.Notes == "" {
			result.Notes = note
		} else {
			result.Notes += "; " + note
		}
	}

	if err := s.results.Create(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Void moves a result into the VOIDED state. Voided results never leave it.
func (s *ResultService) Void(id int64) error {
	result, err := s.results.GetByID(id)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("result %d not found", id)
	}
	if result.Status == models.StatusVoided {
		return nil
	}
	return s.results.UpdateStatus(id, models.StatusVoided)
}

// classifyManual derives the outcome of a manually registered result
func classifyManual(track models.Track, score *int) models.ResultStatus {
	if score == nil {
		return models.StatusPending
	}
	if *score >= MinPassingScore(track) {
		return models.StatusApproved
	}
	return models.StatusRejected
}
