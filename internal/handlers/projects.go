package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

type ProjectsHandler struct {
	store *store.Store
	log   *logrus.Entry
}

func NewProjectsHandler(st *store.Store, log *logrus.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		store: st,
		log:   logrus.NewEntry(log),
	}
}

func (h *ProjectsHandler) List(c *gin.Context) {
	const op = "handlers.Projects.List"
	log := h.log.WithField("operation", op)

	userID, err := queryID(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	projects, err := h.store.ListProjects(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list projects", op)
		respondError(c, http.StatusInternalServerError, "failed to list projects")
		return
	}

	out := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, models.NewProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectsHandler) Get(c *gin.Context) {
	const op = "handlers.Projects.Get"
	log := h.log.WithField("operation", op)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to get project", op)
		respondError(c, http.StatusInternalServerError, "failed to get project")
		return
	}

	c.JSON(http.StatusOK, models.NewProjectResponse(project))
}
