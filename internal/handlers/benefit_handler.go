package handlers

import (
	"net/http"
	"strconv"

	"scorebridge/internal/repository"
	"scorebridge/internal/service"
)

// BenefitHandler exposes the benefit batch entry point and administrative toggles
type BenefitHandler struct {
	benefits    *service.BenefitService
	benefitRepo *repository.BenefitRepository
}

// NewBenefitHandler creates a new benefit handler
func NewBenefitHandler(benefits *service.BenefitService, benefitRepo *repository.BenefitRepository) *BenefitHandler {
	return &BenefitHandler{benefits: benefits, benefitRepo: benefitRepo}
}

// Recompute handles POST /benefits/recompute
func (h *BenefitHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	created, err := h.benefits.RecomputeAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to recompute benefits", "", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"created": created})
}

// Activate handles POST /benefits/{id}/activate
func (h *BenefitHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles POST /benefits/{id}/deactivate
func (h *BenefitHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *BenefitHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid benefit ID", "", err)
		return
	}

	if err := h.benefitRepo.SetActive(id, active); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update benefit", "", err)
		return
	}

	benefit, err := h.benefitRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load benefit", "", err)
		return
	}
	respondJSON(w, http.StatusOK, benefit)
}
