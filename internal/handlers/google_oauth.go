package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"vidshare/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateKey     = "oauth_state"
)

// EnableGoogleOAuth turns on the server-side redirect flow.
func (h *AuthHandler) EnableGoogleOAuth(clientID, clientSecret, siteURL, clientURL string) {
	h.oauth = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  siteURL + "/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	h.userInfoURL = googleUserInfoURL
	h.clientURL = clientURL
}

// GoogleUserInfo Google 用户信息结构
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GoogleRedirect 发起 Google OAuth 登录
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	if h.oauth == nil {
		fail(c, http.StatusNotFound, "Google login is not configured")
		return
	}

	state, err := generateStateToken()
	if err != nil {
		middleware.Fail(c, errors.Wrap(err, "generate oauth state"))
		return
	}

	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		middleware.Fail(c, errors.Wrap(err, "save oauth state"))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GoogleCallback 处理 Google OAuth 回调，登录成功后带着 token cookie 跳回前端
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.oauth == nil {
		fail(c, http.StatusNotFound, "Google login is not configured")
		return
	}

	session := sessions.Default(c)
	savedState, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	_ = session.Save()

	if savedState == "" || c.Query("state") != savedState {
		fail(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		fail(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		logrus.WithError(err).Warn("google token exchange failed")
		fail(c, http.StatusUnauthorized, "Google login failed")
		return
	}

	info, err := h.fetchGoogleUser(c, token)
	if err != nil {
		logrus.WithError(err).Warn("google userinfo failed")
		fail(c, http.StatusUnauthorized, "Google login failed")
		return
	}
	if !info.VerifiedEmail {
		fail(c, http.StatusBadRequest, "Google email is not verified")
		return
	}

	user, err := h.findOrCreate(c, info.Email, info.GivenName)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if user.GoogleID == "" {
		if err := h.users.LinkGoogleID(ctx, user.ID, info.ID); err != nil {
			middleware.Fail(c, err)
			return
		}
	}

	if _, err := h.login(c, user); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.clientURL)
}

func (h *AuthHandler) fetchGoogleUser(c *gin.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	ctx := c.Request.Context()
	resp, err := h.oauth.Client(ctx, token).Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("userinfo without email")
	}
	return &info, nil
}
