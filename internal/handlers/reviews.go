package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"casework-backend/internal/middleware"
	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

type ReviewsHandler struct {
	store *store.Store
	log   *logrus.Entry
}

func NewReviewsHandler(st *store.Store, log *logrus.Logger) *ReviewsHandler {
	return &ReviewsHandler{
		store: st,
		log:   logrus.NewEntry(log),
	}
}

func (h *ReviewsHandler) List(c *gin.Context) {
	const op = "handlers.Reviews.List"
	log := h.log.WithField("operation", op)

	userID, err := queryID(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if userID == nil {
		respondError(c, http.StatusBadRequest, "userId is required")
		return
	}

	reviews, err := h.store.ListReviewsByUser(c.Request.Context(), *userID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list reviews", op)
		respondError(c, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, reviewList(reviews))
}

// Create appends a review about the subject user and returns the subject's
// updated review list. Reviewer identity, name and photo come from the
// resolved caller, not the request body.
func (h *ReviewsHandler) Create(c *gin.Context) {
	const op = "handlers.Reviews.Create"
	log := h.log.WithField("operation", op)

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == 0 || req.Text == "" {
		respondError(c, http.StatusBadRequest, "userId and text are required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(c, http.StatusBadRequest, store.ErrInvalidRating.Error())
		return
	}

	if _, err := h.store.GetUserByID(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		log.WithError(err).Errorf("%s: failed to get subject user", op)
		respondError(c, http.StatusInternalServerError, "failed to create review")
		return
	}

	review := &models.Review{
		UserID:        req.UserID,
		ReviewerID:    caller.ID,
		ReviewerName:  reviewerName(caller),
		ReviewerPhoto: caller.Photo,
		Text:          req.Text,
		Rating:        req.Rating,
	}
	if _, err := h.store.CreateReview(c.Request.Context(), review); err != nil {
		if errors.Is(err, store.ErrInvalidRating) {
			respondError(c, http.StatusBadRequest, store.ErrInvalidRating.Error())
			return
		}
		log.WithError(err).Errorf("%s: failed to create review", op)
		respondError(c, http.StatusInternalServerError, "failed to create review")
		return
	}

	reviews, err := h.store.ListReviewsByUser(c.Request.Context(), req.UserID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list reviews", op)
		respondError(c, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	c.JSON(http.StatusCreated, reviewList(reviews))
}

func reviewList(reviews []models.Review) []models.ReviewResponse {
	out := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, models.NewReviewResponse(&reviews[i]))
	}
	return out
}

func reviewerName(u *models.User) sql.NullString {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName.String) + " " + strings.TrimSpace(u.LastName.String))
	if name == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: name, Valid: true}
}
