package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finapp/internal/errors"
	"finapp/internal/middleware"
	"finapp/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	tokens       *middleware.TokenService
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, tokens *middleware.TokenService, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens, auditService: auditService}
}

// CredentialsRequest is the payload of register and login.
type CredentialsRequest struct {
	Email    Text `json:"email" swaggertype:"string" example:"demo@finapp.local"`
	Password Text `json:"password" swaggertype:"string" example:"demo1234"`
}

// ChangePasswordRequest is the payload of change-password.
type ChangePasswordRequest struct {
	CurrentPassword Text `json:"currentPassword" swaggertype:"string"`
	NewPassword     Text `json:"newPassword" swaggertype:"string"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginResponse carries a token and the id it was issued for.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password and return a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "User registration data"
// @Success     201 {object} TokenResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Missing fields or email already registered"
// @Failure     429 {object} ErrorResponse "Too many requests"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(req.Email.String(), req.Password.String())
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionRegister, services.AuditResourceUser, user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, TokenResponse{Token: token})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "User login credentials"
// @Success     200 {object} LoginResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Missing fields"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     429 {object} ErrorResponse "Too many requests"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Authenticate(req.Email.String(), req.Password.String())
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionLogin, services.AuditResourceUser, user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, LoginResponse{Token: token, UserID: user.ID})
}

// ChangePassword handles password rotation
// @Summary     Change password
// @Description Replace the caller's password after re-verifying the current one
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Current and new password"
// @Success     200 {object} StatusResponse "Password changed"
// @Failure     400 {object} ErrorResponse "Missing fields"
// @Failure     401 {object} ErrorResponse "Unauthorized or invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword.String(), req.NewPassword.String()); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionChangePassword, services.AuditResourceUser, userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
