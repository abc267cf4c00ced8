package service

import (
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"scorebridge/internal/database"
	"scorebridge/internal/models"
	"scorebridge/internal/repository"
	"scorebridge/internal/spreadsheet"
)

// ImportKindResults tags ingestion runs of the results export
const ImportKindResults = "RESULTS"

// ImportService drives the per-row ingestion pipeline: decode, validate,
// resolve the student, record the result, evaluate the benefit policy.
type ImportService struct {
	db         *database.DB
	students   *StudentService
	results    *ResultService
	benefits   *BenefitService
	importLogs *repository.ImportLogRepository

	// Rows in one file can depend on rows before them (the same document
	// appearing twice), and two concurrent runs could double-assign benefits,
	// so runs are serialized.
	mu sync.Mutex
}

// NewImportService creates a new import service
func NewImportService(db *database.DB, students *StudentService, results *ResultService,
	benefits *BenefitService, importLogs *repository.ImportLogRepository) *ImportService {
	return &ImportService{
		db:         db,
		students:   students,
		results:    results,
		benefits:   benefits,
		importLogs: importLogs,
	}
}

// ImportResults ingests a results workbook for one track. The caller always
// receives a summary: row-level conditions never surface as errors, and an
// unreadable workbook yields a failed summary with zero processed rows. The
// durable log of the run is created up-front in the PROCESSING state and
// moved to its final state when the run finishes.
func (s *ImportService) ImportResults(r io.Reader, filename string, track models.Track) (*models.ImportSummary, *models.ImportLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &models.ImportSummary{}

	importLog := &models.ImportLog{
		Reference: uuid.NewString(),
		Filename:  filename,
		Kind:      ImportKindResults,
		Track:     track,
		Status:    models.ImportProcessing,
	}
	if err := s.importLogs.Create(importLog); err != nil {
		return summary, nil, err
	}

	sheet, err := spreadsheet.Parse(r)
	if err != nil {
		log.Printf("import %s: unreadable workbook: %v", filename, err)
		summary.Message = err.Error()
		return summary, importLog, s.finalizeLog(importLog, summary, models.ImportFailed)
	}
	summary.HeaderTrace = sheet.Header

	for i, row := range sheet.Rows {
		rowNumber := i + 2 // 1-based, row 1 is the header

		if spreadsheet.IsBlank(row) {
			summary.SkippedBlank++
			continue
		}

		// Voided rows are excluded from totals entirely: no student, no
		// result, neither a success nor a failure.
		if spreadsheet.IsVoided(row) {
			summary.SkippedVoided++
			continue
		}
		summary.TotalRows++

		document := spreadsheet.Cell(row, spreadsheet.ColDocument)
		if document == "" {
			s.fail(summary, rowNumber, "document number is empty")
			continue
		}

		score := spreadsheet.NumericCell(row, spreadsheet.ColGlobalScore)
		if score == nil {
			s.fail(summary, rowNumber, "global score is not numeric")
			continue
		}

		created, updated, result, student, err := s.processRow(row, document, *score, track)
		if err != nil {
			s.fail(summary, rowNumber, err.Error())
			continue
		}

		if created {
			summary.StudentsCreated++
		} else if updated {
			summary.StudentsUpdated++
		}

		if result == nil {
			// Already imported this year for this student and track
			summary.Duplicates++
			continue
		}
		summary.Succeeded++

		if result.Status == models.StatusApproved {
			if _, err := s.benefits.Evaluate(student, result); err != nil {
				log.Printf("import %s row %d: benefit evaluation failed for %s: %v",
					filename, rowNumber, student.Document, err)
			}
		}
	}

	summary.Success = summary.Failed == 0
	status := models.DeriveImportStatus(summary.Succeeded, summary.Failed)
	return summary, importLog, s.finalizeLog(importLog, summary, status)
}

// processRow runs one row's writes under a single transaction. A failure at
// any stage rolls back only this row.
func (s *ImportService) processRow(row []string, document string, score int, track models.Track) (created, updated bool, result *models.TestResult, student *models.Student, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, false, nil, nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	student, created, err = s.students.WithTx(tx).Resolve(resolveInputFromRow(row, document, track))
	if err != nil {
		return false, false, nil, nil, err
	}

	var recorded bool
	result, recorded, err = s.results.WithTx(tx).RecordImported(student, track, score, row)
	if err != nil {
		return false, false, nil, nil, err
	}
	if !recorded {
		result = nil
	}

	if err = tx.Commit(); err != nil {
		return false, false, nil, nil, err
	}
	return created, !created, result, student, nil
}

// resolveInputFromRow maps the fixed column layout onto resolver input
func resolveInputFromRow(row []string, document string, track models.Track) ResolveInput {
	return ResolveInput{
		Document:    document,
		FamilyName1: spreadsheet.Cell(row, spreadsheet.ColFamilyName1),
		FamilyName2: spreadsheet.Cell(row, spreadsheet.ColFamilyName2),
		GivenName1:  spreadsheet.Cell(row, spreadsheet.ColGivenName1),
		GivenName2:  spreadsheet.Cell(row, spreadsheet.ColGivenName2),
		Email:       spreadsheet.Cell(row, spreadsheet.ColEmail),
		Phone:       spreadsheet.Cell(row, spreadsheet.ColPhone),
		Track:       track,
	}
}

func (s *ImportService) fail(summary *models.ImportSummary, rowNumber int, message string) {
	summary.Failed++
	summary.Errors = append(summary.Errors, models.RowError{Row: rowNumber, Message: message})
	log.Printf("import row %d failed: %s", rowNumber, message)
}

// finalizeLog moves the run's log out of PROCESSING into its final state
func (s *ImportService) finalizeLog(importLog *models.ImportLog, summary *models.ImportSummary, status models.ImportStatus) error {
	importLog.Status = status
	importLog.TotalRows = summary.TotalRows
	importLog.SucceededRows = summary.Succeeded
	importLog.FailedRows = summary.Failed
	importLog.Note = summary.Message
	importLog.Errors = summary.Errors
	return s.importLogs.Update(importLog)
}
