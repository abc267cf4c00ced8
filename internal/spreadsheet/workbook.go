package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned when the first worksheet has no header row
var ErrEmptyWorkbook = errors.New("workbook has no header row")

// Sheet is the decoded first worksheet of a results export
type Sheet struct {
	// Header is the first row of the sheet
	Header []string
	// Rows holds the data rows; Rows[0] is spreadsheet row 2
	Rows [][]string
}

// SupportedFilename reports whether the upload's extension is one we can read
func SupportedFilename(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// Parse reads the first worksheet of an xlsx payload. A payload that cannot
// be opened or has no header row is a whole-run failure; anything at the cell
// level is left to the decoder.
func Parse(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	return &Sheet{Header: rows[0], Rows: rows[1:]}, nil
}
