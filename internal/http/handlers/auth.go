package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/calhub/internal/config"
	"github.com/geocoder89/calhub/internal/domain/user"
	"github.com/geocoder89/calhub/internal/repo/postgres"
	"github.com/geocoder89/calhub/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID, email string) (string, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        TokenIssuer
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,calemail"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	err := security.ValidatePassword(req.Password)

	if err != nil {
		RespondValidation(ctx, "Password must be at least 8 characters long, contain an uppercase letter, a number, and a special character.", nil)
		return
	}

	// bcrypt is deliberately slow; budget for it plus the insert
	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		logServerError(ctx, "hash password", err)
		RespondInternal(ctx, "Server error")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Email, hash)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			RespondBadRequest(ctx, "duplicate", "User already registered")
			return
		}

		logServerError(ctx, "create user", err)
		RespondInternal(ctx, "Server error")
		return
	}

	token, err := h.jwt.GenerateAccessToken(u.ID, u.Email)

	if err != nil {
		logServerError(ctx, "generate token", err)
		RespondInternal(ctx, "Server error")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful!",
		"token":   token,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondBadRequest(ctx, "not_found", "User not found")
			return
		}

		logServerError(ctx, "lookup user", err)
		RespondInternal(ctx, "Server error")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondBadRequest(ctx, "invalid_credentials", "Incorrect password")
		return
	}

	token, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.Email)

	if err != nil {
		logServerError(ctx, "generate token", err)
		RespondInternal(ctx, "Server error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

// full detail stays in the logs; clients only ever see the generic message
func logServerError(ctx *gin.Context, op string, err error) {
	slog.Default().ErrorContext(ctx.Request.Context(), "auth operation failed",
		"op", op,
		"err", err,
		"request_id", requestIDFrom(ctx),
	)
}
