package spreadsheet

// Fixed column offsets (0-indexed) of the institutional results export.
// Column 0 and the unlisted odd columns are not consumed.
const (
	ColDocument    = 1
	ColFamilyName1 = 2
	ColFamilyName2 = 3
	ColGivenName1  = 4
	ColGivenName2  = 5
	ColEmail       = 6
	ColPhone       = 7
	ColGlobalScore = 9
)

// VoidedMarker is the literal placed in the score column of a voided result
const VoidedMarker = "VOIDED"

// CompetencyNames lists the eight sub-competencies in export order
var CompetencyNames = []string{
	"Written Communication",
	"Quantitative Reasoning",
	"Critical Reading",
	"Citizenship Competencies",
	"English",
	"Project Formulation",
	"Scientific Thinking",
	"Software Design",
}

// CompetencyColumns holds the column offset of each competency, aligned with CompetencyNames
var CompetencyColumns = []int{11, 13, 15, 17, 19, 21, 23, 25}
