package delivery

import (
	"net/http"
	"strings"

	"jobtracker-backend/internal/auth/dto"
	"jobtracker-backend/internal/auth/usecase"
	"jobtracker-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_token"

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// Login returns the provider authorization URL the frontend should open.
func (h *AuthHandler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LoginResponse{
		AuthorizationURL: h.authUsecase.AuthorizationURL(),
	})
}

// Callback finishes the OAuth flow: exchanges the code, persists credentials
// and identity, sets the session cookie and bounces back to the frontend.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	userID, sessionToken, err := h.authUsecase.HandleCallback(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed: " + err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, sessionToken, int(h.config.SessionExpiry.Seconds()), "/", "", true, true)

	c.Redirect(http.StatusTemporaryRedirect, h.config.FrontendURL+"/dashboard?user_id="+userID)
}

// Session reports the identity behind the session cookie or bearer header.
// An invalid or expired token is not an error, just authenticated=false.
func (h *AuthHandler) Session(c *gin.Context) {
	token := sessionTokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	userID, email, err := h.authUsecase.VerifySessionToken(token)
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		UserID:        userID,
		Email:         email,
	})
}

// Logout clears the session cookie. Session tokens are stateless, so there is
// nothing to revoke server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func sessionTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
