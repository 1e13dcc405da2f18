package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/middleware"
)

// loginRate allows 5 login attempts per minute per client IP.
const loginRate = "5-M"

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	googleAuth   portssvc.GoogleAuthSvcFacade
}

// RegisterAuthRoutes sets up the public authentication routes.
func RegisterAuthRoutes(r *gin.Engine, users portssvc.UserSvcFacade, tokens portssvc.TokenSvcFacade, google portssvc.GoogleAuthSvcFacade) {
	mustRegisterValidators()
	h := &authHandler{userService: users, tokenService: tokens, googleAuth: google}

	rate, err := limiter.NewRateFromFormatted(loginRate)
	if err != nil {
		panic(err)
	}
	loginLimiter := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginLimiter, h.login)
		auth.POST("/google", loginLimiter, h.googleLogin)
	}
}

func (h *authHandler) issueToken(c *gin.Context, user *domain.User, status int) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	c.JSON(status, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}

// register godoc
// @Summary Register new user
// @Description Creates a local account on the free grade and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	h.issueToken(c, user, http.StatusCreated)
}

// login godoc
// @Summary User login
// @Description Authenticates a local account and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	h.issueToken(c, user, http.StatusOK)
}

// googleLogin godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token, creating the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	payload, err := h.googleAuth.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Failed to verify Google token")
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), payload.Subject, email, name)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	logger.Info("Google sign-in", slog.String("user_id", user.UserID))
	h.issueToken(c, user, http.StatusOK)
}
