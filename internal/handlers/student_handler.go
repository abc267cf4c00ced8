package handlers

import (
	"net/http"

	"scorebridge/internal/models"
	"scorebridge/internal/repository"
)

// StudentHandler exposes read access to the student registry
type StudentHandler struct {
	students *repository.StudentRepository
	results  *repository.ResultRepository
	benefits *repository.BenefitRepository
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(students *repository.StudentRepository, results *repository.ResultRepository, benefits *repository.BenefitRepository) *StudentHandler {
	return &StudentHandler{students: students, results: results, benefits: benefits}
}

// List handles GET /students
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load students", "", err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

// Get handles GET /students/{document}
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	student, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, student)
}

// Results handles GET /students/{document}/results
func (h *StudentHandler) Results(w http.ResponseWriter, r *http.Request) {
	student, ok := h.lookup(w, r)
	if !ok {
		return
	}

	results, err := h.results.ListByStudent(student.Document)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load results", "", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Benefits handles GET /students/{document}/benefits
func (h *StudentHandler) Benefits(w http.ResponseWriter, r *http.Request) {
	student, ok := h.lookup(w, r)
	if !ok {
		return
	}

	benefits, err := h.benefits.ListByStudent(student.Document)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load benefits", "", err)
		return
	}
	respondJSON(w, http.StatusOK, benefits)
}

// Stats handles GET /stats
func (h *StudentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	studentCount, err := h.students.Count()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count students", "", err)
		return
	}
	resultCount, err := h.results.Count()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count results", "", err)
		return
	}
	approvedCount, err := h.results.CountByStatus(models.StatusApproved)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count approved results", "", err)
		return
	}
	activeBenefits, err := h.benefits.CountActive()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count benefits", "", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{
		"students":         studentCount,
		"results":          resultCount,
		"approved_results": approvedCount,
		"active_benefits":  activeBenefits,
	})
}

func (h *StudentHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Student, bool) {
	document := r.PathValue("document")
	student, err := h.students.GetByDocument(document)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load student", "", err)
		return nil, false
	}
	if student == nil {
		respondWithError(w, http.StatusNotFound, "Student not found", "", nil)
		return nil, false
	}
	return student, true
}
