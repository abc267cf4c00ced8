package service

import (
	"testing"

	"scorebridge/internal/models"
)

func approveResult(t *testing.T, env *testEnv, student *models.Student, track models.Track, score int) *models.TestResult {
	t.Helper()
	result, recorded, err := env.results.RecordImported(student, track, score, nil)
	if err != nil {
		t.Fatalf("Failed to record result for %s: %v", student.Document, err)
	}
	if !recorded {
		t.Fatalf("Result for %s was not recorded", student.Document)
	}
	return result
}

func TestEvaluateAssignsBandBenefit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	student := seedStudent(t, env, "500001", models.TrackExitCycle)
	result := approveResult(t, env, student, models.TrackExitCycle, 205)

	benefit, err := env.benefits.Evaluate(student, result)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if benefit == nil {
		t.Fatal("Score 205 on exit track should earn a benefit")
	}
	if benefit.Kind != models.BenefitGradeExemption {
		t.Errorf("Expected GRADE_EXEMPTION, got %s", benefit.Kind)
	}
	if benefit.Grade != 4.5 || benefit.DiscountPercent != 0 {
		t.Errorf("Unexpected terms: grade %v discount %v", benefit.Grade, benefit.DiscountPercent)
	}
	if !benefit.Active {
		t.Error("New benefit should be active")
	}
	if !benefit.AssignedOn.Equal(testClock()) {
		t.Errorf("AssignedOn = %v, want clock time", benefit.AssignedOn)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	student := seedStudent(t, env, "500002", models.TrackExitCycle)
	result := approveResult(t, env, student, models.TrackExitCycle, 235)

	first, err := env.benefits.Evaluate(student, result)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if first == nil || first.Kind != models.BenefitFeeDiscount50 {
		t.Fatalf("Score 235 should earn FEE_DISCOUNT_50, got %+v", first)
	}

	second, err := env.benefits.Evaluate(student, result)
	if err != nil {
		t.Fatalf("Second evaluate failed: %v", err)
	}
	if second != nil {
		t.Error("Re-evaluating with an active benefit should be a no-op")
	}

	count, err := env.benefitRepo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 benefit, got %d", count)
	}
}

func TestEvaluateSkipsNonQualifyingResults(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	student := seedStudent(t, env, "500003", models.TrackExitCycle)

	score := 160
	tests := []struct {
		name   string
		result *models.TestResult
	}{
		{"rejected result", &models.TestResult{Status: models.StatusRejected, GlobalScore: &score, Track: models.TrackExitCycle}},
		{"approved without score", &models.TestResult{Status: models.StatusApproved, Track: models.TrackExitCycle}},
		{"approved below the bands", &models.TestResult{Status: models.StatusApproved, GlobalScore: &score, Track: models.TrackExitCycle}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			benefit, err := env.benefits.Evaluate(student, tt.result)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if benefit != nil {
				t.Errorf("Expected no benefit, got %s", benefit.Kind)
			}
		})
	}
}

func TestEvaluateRespectsExistingActiveBenefit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	student := seedStudent(t, env, "500004", models.TrackExitCycle)

	// An administratively assigned benefit blocks further assignment
	if err := env.benefitRepo.Create(&models.Benefit{
		StudentDocument: student.Document,
		Kind:            models.BenefitGradeExemption,
		Grade:           4.5,
		AssignedOn:      testClock(),
		Active:          true,
	}); err != nil {
		t.Fatalf("Failed to create benefit: %v", err)
	}

	result := approveResult(t, env, student, models.TrackExitCycle, 250)
	benefit, err := env.benefits.Evaluate(student, result)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if benefit != nil {
		t.Error("Student with an active benefit should not receive a second one")
	}
}

func TestRecomputeAll(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	qualifying := seedStudent(t, env, "500005", models.TrackExitCycle)
	approveResult(t, env, qualifying, models.TrackExitCycle, 245)

	belowBands := seedStudent(t, env, "500006", models.TrackExitCycle)
	approveResult(t, env, belowBands, models.TrackExitCycle, 160)

	seedStudent(t, env, "500007", models.TrackEarlyCycle) // no results at all

	created, err := env.benefits.RecomputeAll()
	if err != nil {
		t.Fatalf("RecomputeAll failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("Expected 1 benefit created, got %d", created)
	}

	benefits, err := env.benefitRepo.ListByStudent(qualifying.Document)
	if err != nil {
		t.Fatalf("ListByStudent failed: %v", err)
	}
	if len(benefits) != 1 || benefits[0].Kind != models.BenefitFeeDiscount100 {
		t.Fatalf("Expected one FEE_DISCOUNT_100 benefit, got %+v", benefits)
	}

	// Second run finds everyone already settled
	created, err = env.benefits.RecomputeAll()
	if err != nil {
		t.Fatalf("Second RecomputeAll failed: %v", err)
	}
	if created != 0 {
		t.Errorf("Expected 0 benefits on second run, got %d", created)
	}
}
