package handlers

import (
	"database/sql"
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

type CasesHandler struct {
	store *store.Store
	blobs blobstore.Store
	log   *logrus.Entry
}

func NewCasesHandler(st *store.Store, blobs blobstore.Store, log *logrus.Logger) *CasesHandler {
	return &CasesHandler{
		store: st,
		blobs: blobs,
		log:   logrus.NewEntry(log),
	}
}

// Create posts a new case. Multipart form: title, theme and description are
// required; cover (single image) and files (up to 15 attachments) are
// optional and stored through the blob store.
func (h *CasesHandler) Create(c *gin.Context) {
	const op = "handlers.Cases.Create"
	log := h.log.WithField("operation", op)

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	title := c.PostForm("title")
	theme := c.PostForm("theme")
	description := c.PostForm("description")
	if title == "" || theme == "" || description == "" {
		respondError(c, http.StatusBadRequest, "title, theme and description are required")
		return
	}

	newCase := &models.Case{
		UserID:      caller.ID,
		Title:       title,
		Theme:       theme,
		Description: description,
	}

	if fh, err := c.FormFile("cover"); err == nil {
		data, err := readMultipartFile(fh)
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read cover upload")
			return
		}
		path, err := h.blobs.Put(c.Request.Context(), fh.Filename, data)
		if err != nil {
			log.WithError(err).Errorf("%s: failed to store cover", op)
			respondError(c, http.StatusInternalServerError, "failed to store cover")
			return
		}
		newCase.Cover = sql.NullString{String: path, Valid: true}
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	attachments := form.File["files"]
	if len(attachments) > maxAttachmentFiles {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("at most %d files are allowed", maxAttachmentFiles))
		return
	}
	for _, fh := range attachments {
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
		newCase.Files = append(newCase.Files, path)
	}

	created, err := h.store.CreateCase(c.Request.Context(), newCase)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to create case", op)
		respondError(c, http.StatusInternalServerError, "failed to create case")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

func (h *CasesHandler) List(c *gin.Context) {
	const op = "handlers.Cases.List"
	log := h.log.WithField("operation", op)

	userID, err := queryID(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	cases, err := h.store.ListCases(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list cases", op)
		respondError(c, http.StatusInternalServerError, "failed to list cases")
		return
	}

	out := make([]models.CaseResponse, 0, len(cases))
	for i := range cases {
		out = append(out, models.NewCaseResponse(&cases[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CasesHandler) Get(c *gin.Context) {
	const op = "handlers.Cases.Get"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	caseItem, err := h.store.GetCase(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "case not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to get case", op)
		respondError(c, http.StatusInternalServerError, "failed to get case")
		return
	}

	c.JSON(http.StatusOK, models.NewCaseResponse(caseItem))
}

// Accept runs the open -> accepted transition, spawning the processed case
// in the same transaction.
func (h *CasesHandler) Accept(c *gin.Context) {
	const op = "handlers.Cases.Accept"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AcceptCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExecutorID == 0 {
		respondError(c, http.StatusBadRequest, "executorId is required")
		return
	}

	pc, err := h.store.AcceptCase(c.Request.Context(), id, req.ExecutorID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(c, http.StatusNotFound, "case or executor not found")
		case errors.Is(err, store.ErrCaseAlreadyAccepted):
			respondError(c, http.StatusBadRequest, store.ErrCaseAlreadyAccepted.Error())
		default:
			log.WithError(err).Errorf("%s: failed to accept case", op)
			respondError(c, http.StatusInternalServerError, "failed to accept case")
		}
		return
	}

	c.JSON(http.StatusOK, models.AcceptCaseResponse{CaseID: pc.CaseID})
}
