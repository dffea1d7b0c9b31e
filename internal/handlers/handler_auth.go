package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/platform/config"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and token refresh.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login and
// refresh get a tighter per-IP rate limit than the rest of the API.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Token)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/refresh", limitMiddleware, h.refresh)
	}

	// Logout needs the caller's identity
	authed := rg.Group("/api/v1/auth", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.POST("/logout", h.logout)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User registration info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", newUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Do not distinguish unknown email from wrong password
		logger.Warn("Login failed", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate tokens")
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

// refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new token pair. The old refresh token is rotated out.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to validate refresh token")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate tokens")
		return
	}

	logger.Info("Tokens refreshed", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary User logout
// @Description Invalidates the caller's refresh token.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to log out")
		return
	}

	logger.Info("User logged out", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}

// issueTokens generates a fresh access/refresh pair and persists the hashed
// refresh token.
func (h *authHandler) issueTokens(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		return nil, err
	}

	refreshHash := utils.HashRefreshToken(refreshToken)
	if err := h.userService.UpdateRefreshToken(c.Request.Context(), user.UserID, refreshHash, refreshExpiry); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:            accessToken,
		ExpiresAt:        accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
		User:             dto.ToUserResponse(user),
	}, nil
}
