package models

import (
	"fmt"
	"time"
)

// ImportStatus is the final state of an ingestion run
type ImportStatus string

const (
	ImportProcessing          ImportStatus = "PROCESSING"
	ImportCompleted           ImportStatus = "COMPLETED"
	ImportCompletedWithErrors ImportStatus = "COMPLETED_WITH_ERRORS"
	ImportFailed              ImportStatus = "FAILED"
)

// RowError records a single row-level failure inside an import
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ImportLog is the durable record of an ingestion run
type ImportLog struct {
	ID            int64        `json:"id"`
	Reference     string       `json:"reference"`
	Filename      string       `json:"filename"`
	Kind          string       `json:"kind"`
	Track         Track        `json:"track"`
	Status        ImportStatus `json:"status"`
	TotalRows     int          `json:"total_rows"`
	SucceededRows int          `json:"succeeded_rows"`
	FailedRows    int          `json:"failed_rows"`
	Note          string       `json:"note,omitempty"`
	Errors        []RowError   `json:"errors,omitempty"`
	StartedAt     time.Time    `json:"started_at"`
}

// ImportSummary is the per-run aggregation returned to the caller. It is
// built fresh for each run; the durable subset lands in ImportLog.
type ImportSummary struct {
	Success         bool       `json:"success"`
	TotalRows       int        `json:"total_rows"`
	Succeeded       int        `json:"succeeded"`
	Failed          int        `json:"failed"`
	SkippedBlank    int        `json:"skipped_blank"`
	SkippedVoided   int        `json:"skipped_voided"`
	Duplicates      int        `json:"duplicates"`
	StudentsCreated int        `json:"students_created"`
	StudentsUpdated int        `json:"students_updated"`
	Errors          []RowError `json:"errors,omitempty"`
	HeaderTrace     []string   `json:"header_trace,omitempty"`
	Message         string     `json:"message,omitempty"`
}

// DeriveImportStatus classifies a finished run from its row counters. A run
// whose workbook parsed but produced no failing rows is COMPLETED, even when
// every row was blank or voided; FAILED is reserved for runs where nothing
// succeeded. Unreadable payloads never reach this function.
func DeriveImportStatus(succeeded, failed int) ImportStatus {
	switch {
	case failed == 0:
		return ImportCompleted
	case succeeded > 0:
		return ImportCompletedWithErrors
	default:
		return ImportFailed
	}
}
