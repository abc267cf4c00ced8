package models

import "time"

// ResultStatus is the outcome classification of a test result
type ResultStatus string

const (
	StatusPending  ResultStatus = "PENDING"
	StatusApproved ResultStatus = "APPROVED"
	StatusRejected ResultStatus = "REJECTED"
	StatusVoided   ResultStatus = "VOIDED"
	StatusPartial  ResultStatus = "PARTIAL"
)

// TestResult is one exam sitting for a student. At most one result exists per
// (student, track, exam year); a re-import of the same key is a no-op.
type TestResult struct {
	ID              int64            `json:"id"`
	StudentDocument string           `json:"student_document"`
	Track           Track            `json:"track"`
	GlobalScore     *int             `json:"global_score"`
	ExamYear        int              `json:"exam_year"`
	ExamPeriod      int              `json:"exam_period"`
	Status          ResultStatus     `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	Competencies    []CompetencyScore `json:"competencies,omitempty"`
	RegisteredAt    time.Time        `json:"registered_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CompetencyScore is a named sub-score of a test result
type CompetencyScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AddCompetency appends a sub-score, replacing any previous entry with the same name
func (r *TestResult) AddCompetency(name string, score int) {
	for i := range r.Competencies {
		if r.Competencies[i].Name == name {
			r.Competencies[i].Score = score
			return
		}
	}
	r.Competencies = append(r.Competencies, CompetencyScore{Name: name, Score: score})
}
