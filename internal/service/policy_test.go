package service

import (
	"testing"

	"scorebridge/internal/models"
)

func TestLookupBand(t *testing.T) {
	tests := []struct {
		name     string
		track    models.Track
		score    int
		wantKind models.BenefitKind
		wantOK   bool
	}{
		{"early below bands", models.TrackEarlyCycle, 119, "", false},
		{"early exemption low edge", models.TrackEarlyCycle, 120, models.BenefitGradeExemption, true},
		{"early exemption high edge", models.TrackEarlyCycle, 150, models.BenefitGradeExemption, true},
		{"early half discount low edge", models.TrackEarlyCycle, 151, models.BenefitFeeDiscount50, true},
		{"early half discount high edge", models.TrackEarlyCycle, 170, models.BenefitFeeDiscount50, true},
		{"early full discount low edge", models.TrackEarlyCycle, 171, models.BenefitFeeDiscount100, true},
		{"early full discount top of scale", models.TrackEarlyCycle, 200, models.BenefitFeeDiscount100, true},
		{"exit below bands", models.TrackExitCycle, 179, "", false},
		{"exit exemption low edge", models.TrackExitCycle, 180, models.BenefitGradeExemption, true},
		{"exit exemption mid", models.TrackExitCycle, 205, models.BenefitGradeExemption, true},
		{"exit exemption high edge", models.TrackExitCycle, 210, models.BenefitGradeExemption, true},
		{"exit half discount low edge", models.TrackExitCycle, 211, models.BenefitFeeDiscount50, true},
		{"exit half discount mid", models.TrackExitCycle, 235, models.BenefitFeeDiscount50, true},
		{"exit full discount low edge", models.TrackExitCycle, 241, models.BenefitFeeDiscount100, true},
		{"exit full discount top of scale", models.TrackExitCycle, 300, models.BenefitFeeDiscount100, true},
		{"exit above scale", models.TrackExitCycle, 301, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, ok := LookupBand(tt.track, tt.score)
			if ok != tt.wantOK {
				t.Fatalf("LookupBand(%s, %d) ok = %v, want %v", tt.track, tt.score, ok, tt.wantOK)
			}
			if ok && band.Kind != tt.wantKind {
				t.Errorf("LookupBand(%s, %d) kind = %v, want %v", tt.track, tt.score, band.Kind, tt.wantKind)
			}
		})
	}
}

func TestBandTerms(t *testing.T) {
	tests := []struct {
		kind         models.BenefitKind
		wantGrade    float64
		wantDiscount float64
	}{
		{models.BenefitGradeExemption, 4.5, 0},
		{models.BenefitFeeDiscount50, 4.7, 50},
		{models.BenefitFeeDiscount100, 5.0, 100},
	}

	for _, tt := range tests {
		for track, bands := range benefitBands {
			for _, band := range bands {
				if band.Kind != tt.kind {
					continue
				}
				if band.Grade != tt.wantGrade {
					t.Errorf("%s/%s grade = %v, want %v", track, tt.kind, band.Grade, tt.wantGrade)
				}
				if band.Discount != tt.wantDiscount {
					t.Errorf("%s/%s discount = %v, want %v", track, tt.kind, band.Discount, tt.wantDiscount)
				}
			}
		}
	}
}

// TestBandsArePartitioned walks every score on both scales: no score may hit
// two bands, and no retake score may hit any band.
func TestBandsArePartitioned(t *testing.T) {
	for _, track := range []models.Track{models.TrackEarlyCycle, models.TrackExitCycle} {
		for score := 0; score <= track.MaxScore(); score++ {
			matches := 0
			for _, band := range benefitBands[track] {
				if score >= band.Min && score <= band.Max {
					matches++
				}
			}
			if matches > 1 {
				t.Errorf("%s score %d matches %d bands", track, score, matches)
			}
			if matches > 0 && RetakeRequired(track, score) {
				t.Errorf("%s score %d both qualifies for a benefit and requires a retake", track, score)
			}
		}
	}
}

func TestRetakeRequired(t *testing.T) {
	tests := []struct {
		track models.Track
		score int
		want  bool
	}{
		{models.TrackEarlyCycle, 79, true},
		{models.TrackEarlyCycle, 80, false},
		{models.TrackExitCycle, 120, true},
		{models.TrackExitCycle, 121, false},
	}

	for _, tt := range tests {
		if got := RetakeRequired(tt.track, tt.score); got != tt.want {
			t.Errorf("RetakeRequired(%s, %d) = %v, want %v", tt.track, tt.score, got, tt.want)
		}
	}
}

func TestMinPassingScore(t *testing.T) {
	if got := MinPassingScore(models.TrackEarlyCycle); got != 80 {
		t.Errorf("MinPassingScore(early) = %d, want 80", got)
	}
	if got := MinPassingScore(models.TrackExitCycle); got != 121 {
		t.Errorf("MinPassingScore(exit) = %d, want 121", got)
	}
}

func TestClassifyManual(t *testing.T) {
	score := func(n int) *int { return &n }

	tests := []struct {
		name  string
		track models.Track
		score *int
		want  models.ResultStatus
	}{
		{"no score is pending", models.TrackEarlyCycle, nil, models.StatusPending},
		{"early at minimum", models.TrackEarlyCycle, score(80), models.StatusApproved},
		{"early below minimum", models.TrackEarlyCycle, score(79), models.StatusRejected},
		{"exit at minimum", models.TrackExitCycle, score(121), models.StatusApproved},
		{"exit below minimum", models.TrackExitCycle, score(120), models.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyManual(tt.track, tt.score); got != tt.want {
				t.Errorf("classifyManual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaceholderEmail(t *testing.T) {
	got := PlaceholderEmail("123456")
	expected := "123456@institution-temp"
	if got != expected {
		t.Errorf("PlaceholderEmail() = %v, want %v", got, expected)
	}
}
