package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"casework-backend/internal/blobstore"
	"casework-backend/internal/middleware"
	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

type ProcessedCasesHandler struct {
	store *store.Store
	blobs blobstore.Store
	log   *logrus.Entry
}

func NewProcessedCasesHandler(st *store.Store, blobs blobstore.Store, log *logrus.Logger) *ProcessedCasesHandler {
	return &ProcessedCasesHandler{
		store: st,
		blobs: blobs,
		log:   logrus.NewEntry(log),
	}
}

func (h *ProcessedCasesHandler) List(c *gin.Context) {
	const op = "handlers.ProcessedCases.List"
	log := h.log.WithField("operation", op)

	executorID, err := queryID(c, "executorId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.store.ListProcessedCases(c.Request.Context(), executorID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list processed cases", op)
		respondError(c, http.StatusInternalServerError, "failed to list processed cases")
		return
	}

	out := make([]models.ProcessedCaseResponse, 0, len(items))
	for i := range items {
		out = append(out, models.NewProcessedCaseResponse(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProcessedCasesHandler) Get(c *gin.Context) {
	const op = "handlers.ProcessedCases.Get"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	pc, err := h.store.GetProcessedCase(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "processed case not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to get processed case", op)
		respondError(c, http.StatusInternalServerError, "failed to get processed case")
		return
	}

	c.JSON(http.StatusOK, models.NewProcessedCaseResponse(pc))
}

// UploadFiles stores extra attachments for an in-flight assignment and
// appends their paths to the processed case's file list.
func (h *ProcessedCasesHandler) UploadFiles(c *gin.Context) {
	const op = "handlers.ProcessedCases.UploadFiles"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	uploads := form.File["extraFiles"]
	if len(uploads) == 0 {
		respondError(c, http.StatusBadRequest, "extraFiles are required")
		return
	}
	if len(uploads) > maxAttachmentFiles {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("at most %d files are allowed", maxAttachmentFiles))
		return
	}

	paths := make([]string, 0, len(uploads))
	for _, fh := range uploads {
		data, err := readMultipartFile(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read file upload")
			return
		}
		path, err := h.blobs.Put(c.Request.Context(), fh.Filename, data)
		if err != nil {
			log.WithError(err).Errorf("%s: failed to store file", op)
			respondError(c, http.StatusInternalServerError, "failed to store file")
			return
		}
		paths = append(paths, path)
	}

	files, err := h.store.AppendProcessedCaseFiles(c.Request.Context(), id, paths)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "processed case not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to append files", op)
		respondError(c, http.StatusInternalServerError, "failed to append files")
		return
	}

	c.JSON(http.StatusOK, models.FileListResponse{Files: files})
}

// Complete runs the in_process -> closed transition. The acting caller must
// be the assigned executor; anyone else sees not-found.
func (h *ProcessedCasesHandler) Complete(c *gin.Context) {
	const op = "handlers.ProcessedCases.Complete"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CompleteCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.store.CompleteCase(c.Request.Context(), id, caller.ID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "processed case not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to complete case", op)
		respondError(c, http.StatusInternalServerError, "failed to complete case")
		return
	}

	c.JSON(http.StatusOK, models.CompleteCaseResponse{ProjectID: project.ID})
}
