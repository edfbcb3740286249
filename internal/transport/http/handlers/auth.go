package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/usecase"
)

// AuthHandler serves authentication endpoints.
type AuthHandler struct {
	auth   *usecase.AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{auth: auth, logger: log}
}

// Login authenticates by email and password and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "VALIDATION_FAILED", "id and password are required")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, []ErrorCase{
			{
				Err:     usecase.ErrInvalidCredentials,
				Status:  http.StatusUnauthorized,
				Code:    "AUTH_INVALID_CREDENTIALS",
				Message: "invalid id or password",
			},
		})
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: LoginData{AccessToken: token}})
}
