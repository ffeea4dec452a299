package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase          loginUseCase
	registerUseCase       registerUseCase
	getCurrentUserUseCase getCurrentUserUseCase
	cookieConfig          config.CookieConfig
	logger                logger.Interface
	now                   func() time.Time
}

func NewAuthHandler(
	loginUC loginUseCase,
	registerUC registerUseCase,
	getCurrentUserUC getCurrentUserUseCase,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:          loginUC,
		registerUseCase:       registerUC,
		getCurrentUserUseCase: getCurrentUserUC,
		cookieConfig:          cookieConfig,
		logger:                logger,
		now:                   time.Now,
	}
}

type sessionResponse struct {
	User      dto.UserDTO `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Login godoc
// @Summary Login
// @Description Authenticate with email and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=sessionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.startSession(c, result)
	utils.SuccessResponse(c, http.StatusOK, "login successful", sessionResponse{
		User:      result.User,
		ExpiresAt: result.ExpiresAt,
	})
}

// Register godoc
// @Summary Register
// @Description Create a customer account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} utils.APIResponse{data=sessionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Company:   req.Company,
		Phone:     req.Phone,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.startSession(c, result)
	utils.CreatedResponse(c, sessionResponse{
		User:      result.User,
		ExpiresAt: result.ExpiresAt,
	}, "registration successful")
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c, h.cookieConfig)
	if userID, ok := middleware.GetUserID(c); ok {
		h.logger.Infow("user logged out", "user_id", userID)
	}
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

// Me godoc
// @Summary Current user
// @Description Profile, roles and permissions of the authenticated user
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	current, err := h.getCurrentUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", current)
}

func (h *AuthHandler) startSession(c *gin.Context, result *usecases.LoginResult) {
	maxAge := int(result.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	utils.SetAccessTokenCookie(c, h.cookieConfig, result.Token, maxAge)
	utils.SetCSRFCookie(c, h.cookieConfig, uuid.NewString(), maxAge)
}
