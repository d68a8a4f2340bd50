package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

type AuthHandler struct {
	store *store.Store
	log   *logrus.Entry
}

func NewAuthHandler(st *store.Store, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		store: st,
		log:   logrus.NewEntry(log),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	const op = "handlers.Auth.Register"
	log := h.log.WithField("operation", op)

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to hash password", op)
		respondError(c, http.StatusInternalServerError, "failed to register")
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondError(c, http.StatusBadRequest, store.ErrDuplicateEmail.Error())
			return
		}
		log.WithError(err).Errorf("%s: failed to create user", op)
		respondError(c, http.StatusInternalServerError, "failed to register")
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{ID: user.ID, Email: user.Email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	const op = "handlers.Auth.Login"
	log := h.log.WithField("operation", op)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a wrong password so callers cannot probe
			// which emails are registered.
			respondError(c, http.StatusBadRequest, "invalid credentials")
			return
		}
		log.WithError(err).Errorf("%s: failed to get user", op)
		respondError(c, http.StatusInternalServerError, "failed to login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusBadRequest, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}
