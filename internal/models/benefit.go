package models

import "time"

// BenefitKind is the closed set of academic incentives a passing result can earn
type BenefitKind string

const (
	BenefitGradeExemption BenefitKind = "GRADE_EXEMPTION"
	BenefitFeeDiscount50  BenefitKind = "FEE_DISCOUNT_50"
	BenefitFeeDiscount100 BenefitKind = "FEE_DISCOUNT_100"
)

// Benefit is an incentive assigned to a student. A student holds at most one
// active benefit at a time.
type Benefit struct {
	ID              int64       `json:"id"`
	StudentDocument string      `json:"student_document"`
	Kind            BenefitKind `json:"kind"`
	Grade           float64     `json:"grade"`
	DiscountPercent float64     `json:"discount_percent"`
	AssignedOn      time.Time   `json:"assigned_on"`
	Active          bool        `json:"active"`
}
