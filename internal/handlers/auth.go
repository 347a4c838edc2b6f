package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"shootflow-backend/internal/config"
	"shootflow-backend/internal/middleware"
	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type AuthHandler struct {
	cfg      *config.Config
	dbClient *supabase.DatabaseClient
}

func NewAuthHandler(cfg *config.Config, dbClient *supabase.DatabaseClient) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		dbClient: dbClient,
	}
}

// Login godoc
// @Summary     Log in
// @Description Exchanges email and password for a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body models.LoginRequest true "Credentials"
// @Success     200 {object} models.LoginResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	user, err := h.dbClient.GetUserByEmail(req.Email)
	if err != nil {
		// Same response as a wrong password, so logins don't leak which
		// emails exist.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"role":  string(user.Role),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to sign token", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: tokenString,
		User: models.UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	})
}

// Register godoc
// @Summary     Register a user
// @Description Creates a staff or client account. Admin only.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.RegisterRequest true "New account"
// @Success     201 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	role, err := workflow.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role", Message: err.Error()})
		return
	}
	if role == workflow.RoleSuperAdmin && middleware.ViewerRole(c) != workflow.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "only a superadmin may create superadmins"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "password must be at least 8 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to hash password", Message: err.Error()})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
	}
	if err := h.dbClient.CreateUser(user); err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "failed to create user", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	})
}
