package handlers

import (
	"net/http"
	"strconv"

	"scorebridge/internal/models"
	"scorebridge/internal/repository"
	"scorebridge/internal/service"
	"scorebridge/internal/spreadsheet"
)

// ImportHandler exposes the ingestion entry point and the import history
type ImportHandler struct {
	imports       *service.ImportService
	importLogs    *repository.ImportLogRepository
	uploadMaxSize int64
}

// NewImportHandler creates a new import handler
func NewImportHandler(imports *service.ImportService, importLogs *repository.ImportLogRepository, uploadMaxSize int64) *ImportHandler {
	return &ImportHandler{imports: imports, importLogs: importLogs, uploadMaxSize: uploadMaxSize}
}

// Upload handles POST /imports: a multipart results workbook plus a track selector
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid upload", "failed to parse multipart form", err)
		return
	}

	track, err := models.ParseTrack(r.FormValue("track"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown track", "", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file", "failed to read uploaded file", err)
		return
	}
	defer file.Close()

	if header.Size == 0 {
		respondWithError(w, http.StatusBadRequest, "File is empty", "", nil)
		return
	}
	if !spreadsheet.SupportedFilename(header.Filename) {
		respondWithError(w, http.StatusBadRequest, "Only .xlsx files are supported", "", nil)
		return
	}

	summary, importLog, err := h.imports.ImportResults(file, header.Filename, track)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record import", "failed to persist import log", err)
		return
	}

	response := map[string]interface{}{"summary": summary}
	if importLog != nil {
		response["reference"] = importLog.Reference
		response["log_id"] = importLog.ID
	}

	status := http.StatusOK
	if summary.TotalRows == 0 && !summary.Success {
		// Whole-run failure: the workbook itself was unreadable
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, response)
}

// List handles GET /imports
func (h *ImportHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.importLogs.List()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load import history", "", err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

// Get handles GET /imports/{id}
func (h *ImportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid import ID", "", err)
		return
	}

	importLog, err := h.importLogs.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load import", "", err)
		return
	}
	if importLog == nil {
		respondWithError(w, http.StatusNotFound, "Import not found", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, importLog)
}
