package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"civicconnect/internal/domain"
	"civicconnect/internal/pkg/jwt"
	"civicconnect/internal/pkg/response"
	"civicconnect/internal/session"
)

const (
	SessionCookie   = "cc_session"
	stateCookie     = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
	postLoginTarget = "/dashboard"
)

type Handler struct {
	service  *Service
	sessions session.Store
	tokens   *jwt.Service
	google   *GoogleClient // nil when OAuth is not configured
	ttl      time.Duration
}

func NewHandler(service *Service, sessions session.Store, tokens *jwt.Service, google *GoogleClient, ttl time.Duration) *Handler {
	return &Handler{service: service, sessions: sessions, tokens: tokens, google: google, ttl: ttl}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/google", h.GoogleRedirect)
	r.GET("/auth/google/callback", h.GoogleCallback)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.issueSession(c, user.ID, string(user.Role)); err != nil {
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not create session")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":     toUserResponse(user),
		"redirect": postLoginTarget,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		return
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.issueSession(c, user.ID, string(user.Role)); err != nil {
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not create session")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":     toUserResponse(user),
		"redirect": postLoginTarget,
	})
}

// Logout destroys the server-side session and clears the cookie. It succeeds
// even when the cookie is missing or stale.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		if claims, err := h.tokens.ValidateToken(token); err == nil {
			if err := h.sessions.Destroy(c.Request.Context(), claims.SessionID); err != nil {
				log.Printf("auth: destroy session failed: %v", err)
			}
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"redirect": "/"})
}

func (h *Handler) GoogleRedirect(c *gin.Context) {
	if h.google == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "google login is not configured")
		return
	}

	state := uuid.NewString()
	c.SetCookie(stateCookie, state, int(stateCookieTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, h.google.AuthURL(state))
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "google login is not configured")
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.Redirect(http.StatusFound, "/?error=google_auth_failed")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	profile, err := h.google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Printf("auth: google exchange failed: %v", err)
		c.Redirect(http.StatusFound, "/?error=google_auth_failed")
		return
	}

	user, err := h.service.LoginWithGoogle(c.Request.Context(), *profile)
	if err != nil {
		log.Printf("auth: google login failed: %v", err)
		c.Redirect(http.StatusFound, "/?error=google_auth_failed")
		return
	}

	if err := h.issueSession(c, user.ID, string(user.Role)); err != nil {
		c.Redirect(http.StatusFound, "/?error=google_auth_failed")
		return
	}
	c.Redirect(http.StatusFound, postLoginTarget)
}

func (h *Handler) issueSession(c *gin.Context, userID int64, role string) error {
	sess, err := h.sessions.Create(c.Request.Context(), userID, domain.UserRole(role))
	if err != nil {
		return err
	}

	token, err := h.tokens.GenerateToken(sess.ID, userID, role)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookie, token, int(h.ttl.Seconds()), "/", "", false, true)
	return nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", verr.Fields)
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrPhoneTaken):
		response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
	default:
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not process request")
	}
}
