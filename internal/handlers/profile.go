package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"casework-backend/internal/blobstore"
	"casework-backend/internal/middleware"
	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

type ProfileHandler struct {
	store *store.Store
	blobs blobstore.Store
	log   *logrus.Entry
}

func NewProfileHandler(st *store.Store, blobs blobstore.Store, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		store: st,
		blobs: blobs,
		log:   logrus.NewEntry(log),
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	const op = "handlers.Profile.Get"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to get user", op)
		respondError(c, http.StatusInternalServerError, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Update modifies the caller's own profile. Accepts JSON or multipart form;
// the multipart variant may carry a replacement photo file.
func (h *ProfileHandler) Update(c *gin.Context) {
	const op = "handlers.Profile.Update"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok || caller.ID != id {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.UpdateProfileRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var parseErr bool
		req, parseErr = h.parseMultipartUpdate(c, log, op)
		if parseErr {
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	user, err := h.store.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to update user", op)
		respondError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// parseMultipartUpdate reads form fields and stores an optional photo upload.
// The bool result reports that a response has already been written.
func (h *ProfileHandler) parseMultipartUpdate(c *gin.Context, log *logrus.Entry, op string) (models.UpdateProfileRequest, bool) {
	var req models.UpdateProfileRequest

	for field, dst := range map[string]**string{
		"firstName":   &req.FirstName,
		"lastName":    &req.LastName,
		"description": &req.Description,
	} {
		if v, ok := c.GetPostForm(field); ok {
			value := v
			*dst = &value
		}
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		// No photo in the form; field updates alone are fine.
		return req, false
	}

	data, err := readMultipartFile(fh)
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read photo upload")
		return req, true
	}
	path, err := h.blobs.Put(c.Request.Context(), fh.Filename, data)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to store photo", op)
		respondError(c, http.StatusInternalServerError, "failed to store photo")
		return req, true
	}
	req.Photo = &path

	return req, false
}
