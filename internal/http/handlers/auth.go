package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/http/middleware"
	"github.com/4shenafi/alx-travel-app-0x02/internal/http/validation"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/users"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/apperr"
)

type AuthHandler struct {
	Repo *users.Repo
}

func NewAuthHandler(repo *users.Repo) *AuthHandler { return &AuthHandler{Repo: repo} }

type registerRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := h.Repo.GetByEmail(c.Request.Context(), email); err == nil {
		middleware.Fail(c, apperr.ConflictErr("Email already registered"))
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	u := users.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    time.Now(),
	}
	if err := h.Repo.Create(c.Request.Context(), &u); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.Repo.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password"))
		return
	}

	token, err := h.Repo.IssueToken(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
