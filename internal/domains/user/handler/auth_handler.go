package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kingsley6145/gamebridge-admin/internal/config"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
	"github.com/Kingsley6145/gamebridge-admin/pkg/jwt"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// AuthHandler gates the panel behind a single admin credential. User
// identity lives in an external provider; the API only needs to know
// the caller is the administrator.
type AuthHandler struct {
	admin      config.AdminConfig
	jwtManager *jwt.Manager
}

func NewAuthHandler(admin config.AdminConfig, jwtManager *jwt.Manager) *AuthHandler {
	return &AuthHandler{admin: admin, jwtManager: jwtManager}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			// Syntax check only. is.Email resolves the domain, which
			// breaks private admin domains and adds a DNS round-trip
			// per login attempt.
			is.EmailFormat.Error("email must be a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login - POST /v1/auth/login
// Wrong email and wrong password answer identically.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid login payload")
		return
	}
	if err := req.Validate(); err != nil {
		if verr, ok := err.(validation.Errors); ok {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED",
				"One or more fields are invalid", verr)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	if req.Email != h.admin.Email || h.admin.PasswordHash == "" {
		response.Unauthorized(c, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("admin login rejected", err)
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	h.issueTokens(c, req.Email)
}

// Refresh - POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		response.BadRequest(c, "invalid refresh payload")
		return
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		response.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	h.issueTokens(c, h.admin.Email)
}

// Me - GET /v1/auth/me
// Requires the auth middleware; echoes the authenticated identity.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"id":    c.GetString("userID"),
		"email": c.GetString("email"),
		"role":  c.GetString("role"),
	})
}

func (h *AuthHandler) issueTokens(c *gin.Context, email string) {
	accessToken, err := h.jwtManager.GenerateAccessToken("admin", email, "admin")
	if err != nil {
		logger.Error("failed to sign access token", err)
		response.InternalServerError(c, "Login failed, please try again")
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken("admin")
	if err != nil {
		logger.Error("failed to sign refresh token", err)
		response.InternalServerError(c, "Login failed, please try again")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user": gin.H{
			"id":    "admin",
			"email": email,
			"role":  "admin",
		},
	})
}
