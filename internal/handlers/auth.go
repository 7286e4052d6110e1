package handlers

import (
	"net/http"
	"strings"
	"time"
	"vidshare/internal/middleware"
	"vidshare/internal/models"
	"vidshare/internal/services"
	"vidshare/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type AuthHandler struct {
	users        store.UserStore
	tokens       *services.TokenService
	cookieSecure bool

	// Google 重定向登录，未配置 GOOGLE_CLIENT_ID 时为 nil
	oauth       *oauth2.Config
	userInfoURL string
	clientURL   string
}

func NewAuthHandler(users store.UserStore, tokens *services.TokenService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		users:        users,
		tokens:       tokens,
		cookieSecure: cookieSecure,
	}
}

type googleLoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// GoogleLogin exchanges an identity already confirmed by Google on the client for our token.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fail(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	user, err := h.findOrCreate(c, email, req.Username)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	token, err := h.login(c, user)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) findOrCreate(c *gin.Context, email, username string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if username == "" {
		username = strings.Split(email, "@")[0]
	}

	user, created, err := h.users.GetOrCreateUser(c.Request.Context(), email, username)
	if err != nil {
		return nil, err
	}
	if created {
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": email}).Info("new user registered")
	}
	return user, nil
}

// login issues a token and mirrors it into an HTTP-only cookie.
func (h *AuthHandler) login(c *gin.Context, user *models.User) (string, error) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.tokens.TTL()/time.Second), "/", "", h.cookieSecure, true)
	return token, nil
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.cookieSecure, true)
	empty(c, http.StatusOK)
}
