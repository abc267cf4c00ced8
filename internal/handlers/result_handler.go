package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"scorebridge/internal/models"
	"scorebridge/internal/repository"
	"scorebridge/internal/service"
)

// ResultHandler exposes the manual result registration path
type ResultHandler struct {
	results  *service.ResultService
	students *repository.StudentRepository
	validate *validator.Validate
}

// NewResultHandler creates a new result handler
func NewResultHandler(results *service.ResultService, students *repository.StudentRepository) *ResultHandler {
	return &ResultHandler{
		results:  results,
		students: students,
		validate: validator.New(),
	}
}

type registerResultRequest struct {
	StudentDocument string `json:"student_document" validate:"required"`
	Track           string `json:"track" validate:"required,oneof=TRACK_A TRACK_B"`
	GlobalScore     *int   `json:"global_score" validate:"omitempty,gte=0"`
	ExamPeriod      int    `json:"exam_period" validate:"omitempty,oneof=1 2"`
	Notes           string `json:"notes" validate:"omitempty,max=500"`
}

// Register handles POST /results: a single manually registered result
func (h *ResultHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error(), "", nil)
		return
	}

	track, err := models.ParseTrack(req.Track)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown track", "", err)
		return
	}
	if req.GlobalScore != nil && *req.GlobalScore > track.MaxScore() {
		respondWithError(w, http.StatusBadRequest, "Score exceeds track maximum", "", nil)
		return
	}

	student, err := h.students.GetByDocument(req.StudentDocument)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load student", "", err)
		return
	}
	if student == nil {
		respondWithError(w, http.StatusNotFound, "Student not found", "", nil)
		return
	}

	result, err := h.results.Register(student, track, req.GlobalScore, req.ExamPeriod, req.Notes)
	if errors.Is(err, service.ErrAlreadyApproved) || errors.Is(err, service.ErrAttemptsExhausted) {
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to register result", "", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// Void handles POST /results/{id}/void
func (h *ResultHandler) Void(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid result ID", "", err)
		return
	}

	if err := h.results.Void(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to void result", "", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(models.StatusVoided)})
}
