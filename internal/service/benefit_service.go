package service

import (
	"log"
	"time"

	"scorebridge/internal/models"
	"scorebridge/internal/repository"
)

// Band is one closed score interval of the benefit policy
type Band struct {
	Min      int
	Max      int
	Kind     models.BenefitKind
	Grade    float64
	Discount float64
}

// benefitBands maps each track to its qualifying intervals. The gap between
// the retake threshold and the lowest band is intentional: those scores earn
// no benefit but do not require a retake either.
var benefitBands = map[models.Track][]Band{
	models.TrackEarlyCycle: {
		{Min: 120, Max: 150, Kind: models.BenefitGradeExemption, Grade: 4.5, Discount: 0},
		{Min: 151, Max: 170, Kind: models.BenefitFeeDiscount50, Grade: 4.7, Discount: 50},
		{Min: 171, Max: 200, Kind: models.BenefitFeeDiscount100, Grade: 5.0, Discount: 100},
	},
	models.TrackExitCycle: {
		{Min: 180, Max: 210, Kind: models.BenefitGradeExemption, Grade: 4.5, Discount: 0},
		{Min: 211, Max: 240, Kind: models.BenefitFeeDiscount50, Grade: 4.7, Discount: 50},
		{Min: 241, Max: 300, Kind: models.BenefitFeeDiscount100, Grade: 5.0, Discount: 100},
	},
}

// LookupBand returns the qualifying band for a score, if any
func LookupBand(track models.Track, score int) (Band, bool) {
	for _, band := range benefitBands[track] {
		if score >= band.Min && score <= band.Max {
			return band, true
		}
	}
	return Band{}, false
}

// RetakeRequired reports whether a score is low enough to require a new sitting
func RetakeRequired(track models.Track, score int) bool {
	if track == models.TrackEarlyCycle {
		return score < 80
	}
	return score <= 120
}

// BenefitService evaluates the benefit policy against approved results
type BenefitService struct {
	benefits *repository.BenefitRepository
	results  *repository.ResultRepository
	students *repository.StudentRepository
	now      func() time.Time
}

// NewBenefitService creates a new benefit service
func NewBenefitService(benefits *repository.BenefitRepository, results *repository.ResultRepository, students *repository.StudentRepository) *BenefitService {
	return &BenefitService{benefits: benefits, results: results, students: students, now: time.Now}
}

// Evaluate applies the band policy to one approved result. It returns nil
// without error when the result is not approved, the score does not reach a
// band, or the student already holds an active benefit — repeated evaluation
// never creates duplicates.
func (s *BenefitService) Evaluate(student *models.Student, result *models.TestResult) (*models.Benefit, error) {
	if result.Status != models.StatusApproved || result.GlobalScore == nil {
		return nil, nil
	}

	band, ok := LookupBand(result.Track, *result.GlobalScore)
	if !ok {
		return nil, nil
	}

	hasActive, err := s.benefits.HasActive(student.Document)
	if err != nil {
		return nil, err
	}
	if hasActive {
		log.Printf("student %s already holds an active benefit, skipping", student.Document)
		return nil, nil
	}

	benefit := &models.Benefit{
		StudentDocument: student.Document,
		Kind:            band.Kind,
		Grade:           band.Grade,
		DiscountPercent: band.Discount,
		AssignedOn:      s.now(),
		Active:          true,
	}
	if err := s.benefits.Create(benefit); err != nil {
		return nil, err
	}

	log.Printf("benefit %s assigned to student %s (score %d, track %s)",
		benefit.Kind, student.Document, *result.GlobalScore, result.Track)
	return benefit, nil
}

// RecomputeAll walks every student, finds their most recent approved result
// and evaluates the benefit policy for it. A single student's failure is
// logged and does not stop the batch. Returns the number of benefits created.
func (s *BenefitService) RecomputeAll() (int, error) {
	students, err := s.students.List()
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range students {
		student := &students[i]

		hasActive, err := s.benefits.HasActive(student.Document)
		if err != nil {
			log.Printf("recompute: failed to check benefits for %s: %v", student.Document, err)
			continue
		}
		if hasActive {
			continue
		}

		result, err := s.latestApprovedResult(student.Document)
		if err != nil {
			log.Printf("recompute: failed to load results for %s: %v", student.Document, err)
			continue
		}
		if result == nil {
			continue
		}

		benefit, err := s.Evaluate(student, result)
		if err != nil {
			log.Printf("recompute: failed to evaluate %s: %v", student.Document, err)
			continue
		}
		if benefit != nil {
			created++
		}
	}
	return created, nil
}

// latestApprovedResult returns the student's newest approved result, or nil
func (s *BenefitService) latestApprovedResult(document string) (*models.TestResult, error) {
	results, err := s.results.ListByStudent(document)
	if err != nil {
		return nil, err
	}
	// ListByStudent orders by registration timestamp descending
	for i := range results {
		if results[i].Status == models.StatusApproved {
			return &results[i], nil
		}
	}
	return nil, nil
}
