package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/groenwerk/offerte-api/internal/service"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService *service.FileService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, maxUploadMB int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary Upload offerte bijlage
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Offerte ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.FileDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	offerteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID: must be a valid UUID")
		return
	}

	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	fileDTO, err := h.fileService.Upload(r.Context(), offerteID, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.logger.Error("failed to upload file", zap.Error(err), zap.String("offerte_id", offerteID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, fileDTO)
}

// @Summary List offerte bijlagen
// @Tags Files
// @Produce json
// @Param id path string true "Offerte ID"
// @Success 200 {array} domain.FileDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /offertes/{id}/files [get]
func (h *FileHandler) ListByOfferte(w http.ResponseWriter, r *http.Request) {
	offerteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offerte ID: must be a valid UUID")
		return
	}

	files, err := h.fileService.ListByOfferte(r.Context(), offerteID)
	if err != nil {
		h.logger.Error("failed to list files", zap.Error(err), zap.String("offerte_id", offerteID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// @Summary Download file
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "File ID"
// @Success 200
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	meta, reader, err := h.fileService.Download(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to download file", zap.Error(err), zap.String("file_id", id.String()))
		respondServiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Filename))
	w.Header().Set("Content-Type", meta.ContentType)
	if meta.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", meta.Size))
	}

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream file", zap.Error(err), zap.String("file_id", id.String()))
	}
}

// @Summary Delete file
// @Tags Files
// @Param id path string true "File ID"
// @Success 204
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete file", zap.Error(err), zap.String("file_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
